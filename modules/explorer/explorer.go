// Package explorer reads per-address live cells from the chain indexing API
// and aggregates deposit capacity into an on-chain voting weight.
package explorer

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"dao-watchdog/lib/httputils"
	"dao-watchdog/lib/logger"
	"dao-watchdog/modules/config"
)

// Only deposit cells carry governance weight; free or otherwise locked
// balances are excluded.
const depositCellType = "nervos_dao_deposit"

// shannons per CKB
const capacityUnit = 1e8

type liveCellPage struct {
	Data []struct {
		Attributes struct {
			CellType string `json:"cell_type"`
			Capacity string `json:"capacity"`
		} `json:"attributes"`
	} `json:"data"`
}

type Client struct {
	conf *config.Config[ExplorerConfig]
	http *httputils.Client
	log  logger.Logger
}

func New(conf *config.Config[ExplorerConfig], log logger.Logger) *Client {
	c := &Client{
		conf: conf,
		log:  log,
	}
	c.http = httputils.NewClient(nil, log)
	return c
}

// applyHeaders re-reads the config so header values follow the loaded file
func (c *Client) applyHeaders() {
	conf := c.conf.Get()
	c.http.SetHeaders(map[string]string{
		"accept":       conf.Accept,
		"content-type": conf.ContentType,
	})
}

// WebAddressURL is the human-facing explorer page for an address, attached
// to exported records for review.
func (c *Client) WebAddressURL(address string) string {
	if address == "" {
		return ""
	}
	return c.conf.Get().WebBase + "/address/" + address
}

// AddressDaoWeight sums the deposit capacity held by one address, floored
// to whole CKB units. Weight computation is best-effort per address: a 404
// means the address was never seen on chain and counts as zero; any other
// exhausted failure truncates at the last fully-summed page and keeps the
// partial sum. The shannon division and floor happen once, at the end, so
// rounding never compounds across pages.
func (c *Client) AddressDaoWeight(address string) int64 {
	c.applyHeaders()
	conf := c.conf.Get()
	c.log.Info("calculating on-chain weight for address " + shortAddr(address) + "...")

	totalShannon := 0.0
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/address_live_cells/%s?page=%d&page_size=%d&sort=capacity.desc",
			conf.ApiBase, address, page, conf.PageSize)

		res, err := httputils.FetchJSON[liveCellPage](c.http, http.MethodGet, url, "", nil)
		if err != nil {
			if httputils.IsNotFound(err) {
				c.log.Info("address not found in explorer (404): " + shortAddr(address) + "...")
			} else {
				c.log.Error("explorer request failed, keeping partial sum:", err)
			}
			break
		}

		for _, cell := range res.Data {
			if cell.Attributes.CellType != depositCellType {
				continue
			}
			capacity, err := strconv.ParseFloat(cell.Attributes.Capacity, 64)
			if err != nil {
				c.log.Error("unparseable capacity for "+shortAddr(address)+":", cell.Attributes.Capacity)
				continue
			}
			totalShannon += capacity
		}

		// this endpoint always ends on a short page, never an empty one
		if len(res.Data) < conf.PageSize {
			break
		}
		time.Sleep(time.Duration(conf.PageCooldownMs) * time.Millisecond)
	}

	return int64(math.Floor(totalShannon / capacityUnit))
}

func shortAddr(a string) string {
	if len(a) <= 15 {
		return a
	}
	return a[:15]
}
