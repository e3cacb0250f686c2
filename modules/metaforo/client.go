// Package metaforo talks to the governance platform: poll resolution, vote
// listing and voter profiles.
package metaforo

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dao-watchdog/lib/httputils"
	"dao-watchdog/lib/logger"
	"dao-watchdog/modules/config"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnparseableReference = errors.New("cannot parse thread id from poll reference")
	ErrNoPoll               = errors.New("thread has no poll")
	ErrNoOptions            = errors.New("poll has no options")
)

// AddressBridge derives a deposit-chain address from a foreign-chain public
// key. Narrow on purpose: the encoding implementation can be swapped or
// mocked without touching the pipeline.
type AddressBridge interface {
	Derive(pubKeyHex string) (string, error)
}

type Client struct {
	conf   *config.Config[MetaforoConfig]
	http   *httputils.Client
	bridge AddressBridge
	log    logger.Logger

	validate *validator.Validate
}

func New(conf *config.Config[MetaforoConfig], bridge AddressBridge, log logger.Logger) *Client {
	c := &Client{
		conf:     conf,
		bridge:   bridge,
		log:      log,
		validate: validator.New(),
	}
	c.http = httputils.NewClient(nil, log)
	return c
}

// applyHeaders re-reads the config so header values follow the loaded file
func (c *Client) applyHeaders() {
	conf := c.conf.Get()
	c.http.SetHeaders(map[string]string{
		"accept":     "application/json, text/plain, */*",
		"api_key":    conf.ApiKey,
		"origin":     conf.Origin,
		"user-agent": conf.UserAgent,
	})
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// ParseReference turns a poll reference into a thread id without any I/O.
// A bare integer is used directly; a URL must end in a run of digits.
func ParseReference(ref string) (int64, bool, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, false, nil
	}
	if !strings.HasPrefix(ref, "http") {
		return 0, false, fmt.Errorf("%w: %q", ErrUnparseableReference, ref)
	}
	m := trailingDigits.FindString(strings.TrimRight(ref, "/"))
	if m == "" {
		return 0, false, fmt.Errorf("%w: %q", ErrUnparseableReference, ref)
	}
	id, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrUnparseableReference, ref)
	}
	return id, true, nil
}

// ResolvePoll resolves a human-supplied reference into the poll's option
// set. A bare identifier is the backward-compatible path: it names a single
// option directly and no option discovery happens. A URL names a thread,
// whose first poll is the only one considered.
func (c *Client) ResolvePoll(ref string) (int64, []PollOption, error) {
	id, isThread, err := ParseReference(ref)
	if err != nil {
		return 0, nil, err
	}

	if !isThread {
		opt := PollOption{ID: id, Name: strconv.FormatInt(id, 10)}
		return id, []PollOption{opt}, nil
	}

	c.log.Info("fetching poll options for thread", id)
	opts, err := c.pollOptions(id)
	if err != nil {
		return 0, nil, err
	}
	return id, opts, nil
}

func (c *Client) pollOptions(threadID int64) ([]PollOption, error) {
	c.applyHeaders()
	conf := c.conf.Get()
	url := fmt.Sprintf("%s/get_thread/%d?sort=old&group_name=%s", conf.ApiBase, threadID, conf.GroupName)

	res, err := httputils.FetchJSON[apiResponse[threadData]](c.http, http.MethodGet, url, "", nil)
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, &APIError{Code: res.Code, Description: res.Description}
	}

	polls := res.Data.Thread.Polls
	if len(polls) == 0 {
		return nil, ErrNoPoll
	}
	options := polls[0].Options
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	for _, opt := range options {
		if err := c.validate.Struct(opt); err != nil {
			return nil, fmt.Errorf("malformed poll option: %w", err)
		}
		c.log.Info(fmt.Sprintf("  - %s (ID: %d, Voters: %d, Weight: %v)", opt.Name, opt.ID, opt.Voters, opt.Weight))
	}
	return options, nil
}

func (c *Client) pageCooldown() time.Duration {
	return time.Duration(c.conf.Get().PageCooldownMs) * time.Millisecond
}
