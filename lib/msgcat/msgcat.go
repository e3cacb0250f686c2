// Package msgcat holds the operator-facing report strings per locale. The
// pipeline logic exists exactly once; only its narration is translated.
package msgcat

import "fmt"

const DefaultLocale = "en"

type Catalog struct {
	locale string
}

func New(locale string) Catalog {
	if _, ok := messages[locale]; !ok {
		locale = DefaultLocale
	}
	return Catalog{locale: locale}
}

func (c Catalog) Locale() string {
	return c.locale
}

// Sprintf formats the message registered under key. Unknown keys fall back
// to the key itself so a missing entry is visible, not fatal.
func (c Catalog) Sprintf(key string, args ...any) string {
	m, ok := messages[c.locale][key]
	if !ok {
		m, ok = messages[DefaultLocale][key]
	}
	if !ok {
		return key
	}
	return fmt.Sprintf(m, args...)
}

var messages = map[string]map[string]string{
	"en": {
		"processing_option": "Processing poll option: %s (ID: %d)",
		"no_votes":          "Option %s has no vote data.",
		"option_failed":     "Failed to process option %s: %s",
		"initial_votes":     "--- Option [%s] initial vote data ---",
		"votes_header":      "Nickname\t\tVote time\t\t\tVote weight",
		"processing_user":   "Processing user %d/%d: %s (ID: %d)",
		"no_addresses":      "User %d has no bound addresses.",
		"address_failed":    "Failed to get addresses for user %d: %s",
		"address_weight":    "Address %s... weight: %d CKB",
		"user_total":        "User %d on-chain total weight calculated: %d CKB",
		"platform_weight":   "Metaforo recorded weight: %v",
		"final_results":     "--- Option [%s] final weight verification results ---",
		"need_review":       "DISCREPANCY: %s reported %v but holds %d on chain",
		"all_done":          "All poll options processed!",
		"files_generated":   "Generated %d files:",
	},
	"zh": {
		"processing_option": "开始处理投票选项: %s (ID: %d)",
		"no_votes":          "选项 %s 未获取到任何投票数据。",
		"option_failed":     "处理选项 %s 失败: %s",
		"initial_votes":     "--- 选项 [%s] 初始投票数据 ---",
		"votes_header":      "昵称\t\t投票时间\t\t\t投票权重",
		"processing_user":   "正在处理第 %d/%d 个用户: %s (ID: %d)",
		"no_addresses":      "用户 %d 未绑定任何地址。",
		"address_failed":    "获取用户 %d 地址失败: %s",
		"address_weight":    "地址 %s... 的权重为: %d CKB",
		"user_total":        "用户 %d 的链上总权重计算完成: %d CKB",
		"platform_weight":   "Metaforo 记录的权重: %v",
		"final_results":     "--- 选项 [%s] 最终权重验证结果 ---",
		"need_review":       "权重不一致: %s 报告 %v，链上实际 %d",
		"all_done":          "所有投票选项处理完成!",
		"files_generated":   "共生成 %d 个文件:",
	},
}
