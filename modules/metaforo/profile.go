package metaforo

import (
	"fmt"
	"net/http"

	"dao-watchdog/lib/utils"
)

// VoterAddresses resolves the set of deposit-chain addresses bound to a
// voter: the natively registered list plus, when the profile carries a
// foreign-chain public key, the bridge-derived address. Duplicates are
// suppressed by string equality. A voter with no profile data or no
// addresses yields an empty set, which downstream treats as weight zero.
func (c *Client) VoterAddresses(userID int64) ([]string, error) {
	c.applyHeaders()
	conf := c.conf.Get()
	c.log.Info("querying addresses bound to user", userID, "...")

	url := fmt.Sprintf("%s/profile/%d/%s", conf.ApiBase, userID, conf.GroupName)
	res, err := fetchEnvelope[profileData](c, http.MethodGet, url, "", nil)
	if err != nil {
		return nil, err
	}

	addresses := append([]string{}, res.User.NeuronAddresses...)

	if key := res.User.Web3PublicKey.TakeOr(""); key != "" {
		derived, err := c.bridge.Derive(key)
		if err != nil {
			// bad key material on the profile; the native list still counts
			c.log.Error("cannot derive bridge address for user", userID, ":", err)
		} else if derived != "" && !utils.Contains(addresses, derived) {
			addresses = append(addresses, derived)
			c.log.Info("converted web3 public key (" + shortKey(key) + "...) to PW-Lock address")
		}
	}

	return addresses, nil
}

func shortKey(k string) string {
	if len(k) <= 10 {
		return k
	}
	return k[:10]
}
