package metaforo

import (
	"fmt"

	"github.com/moznion/go-optional"
)

// success code of the platform's response envelope
const successCode = 20000

// apiResponse is the JSON envelope every platform endpoint replies with.
type apiResponse[T any] struct {
	Status      bool   `json:"status"`
	Code        int    `json:"code"`
	Description string `json:"description"`
	Data        T      `json:"data"`
}

func (r *apiResponse[T]) ok() bool {
	return r.Status && r.Code == successCode
}

// APIError is a well-formed platform reply whose envelope code signals
// failure. Never retried.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform rejected request (code %d): %s", e.Code, e.Description)
}

type PollOption struct {
	ID     int64   `json:"id" validate:"required"`
	Name   string  `json:"html"`
	Voters int64   `json:"voters"`
	Weight float64 `json:"weights"`
}

type threadData struct {
	Thread struct {
		Polls []struct {
			Options []PollOption `json:"options"`
		} `json:"polls"`
	} `json:"thread"`
}

// Vote is one platform-reported vote for a poll option.
type Vote struct {
	UserID   int64   `json:"user_id"`
	Name     string  `json:"name"`
	LastTime string  `json:"last_time"`
	Weight   float64 `json:"weight"`
}

type votePage struct {
	List []Vote `json:"list"`
}

type profileData struct {
	User struct {
		NeuronAddresses []string                `json:"neuron_addresses"`
		Web3PublicKey   optional.Option[string] `json:"web3_public_key"`
	} `json:"user"`
}
