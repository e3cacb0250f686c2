package metaforo

import (
	"net/http"
	"strconv"
	"time"

	"dao-watchdog/lib/httputils"
)

// fetchEnvelope decodes a platform reply and unwraps its envelope. A
// non-success envelope code is a permanent error carrying the platform's
// own description.
func fetchEnvelope[T any](c *Client, method, url, contentType string, body []byte) (*T, error) {
	res, err := httputils.FetchJSON[apiResponse[T]](c.http, method, url, contentType, body)
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, &APIError{Code: res.Code, Description: res.Description}
	}
	return &res.Data, nil
}

// ListVotes walks the paginated vote listing for one poll option to
// completion. Pages are 1-indexed and the endpoint does not declare a page
// size, so the sole termination signal is an empty page. Partial vote lists
// are never returned: any failure aborts the whole option.
func (c *Client) ListVotes(optionID int64) ([]Vote, error) {
	c.applyHeaders()
	conf := c.conf.Get()
	url := conf.ApiBase + "/poll/list"

	var all []Vote
	for page := 1; ; page++ {
		c.log.Info("fetching vote list page", page, "...")

		contentType, body, err := httputils.MultipartForm(map[string]string{
			"option_id":  strconv.FormatInt(optionID, 10),
			"page":       strconv.Itoa(page),
			"group_name": conf.GroupName,
		})
		if err != nil {
			return nil, err
		}

		res, err := fetchEnvelope[votePage](c, http.MethodPost, url, contentType, body)
		if err != nil {
			return nil, err
		}

		if len(res.List) == 0 {
			c.log.Info("all vote data fetched")
			return all, nil
		}
		all = append(all, res.List...)

		// platform-level rate limit, independent of the retry delay
		time.Sleep(c.pageCooldown())
	}
}
