// Package coinbase implements a client for the Coinbase Advanced Trade REST API.
//
// A Signer authenticates every call with an HMAC-SHA256 signature over
// timestamp, method, resource path and body, and maps each failure onto the
// closed set of core.ErrorType kinds. The Account, Product, Fee and Order APIs
// share one Signer and add typed decoding on top of it.
//
// Basic usage:
//
//	cfg := core.DefaultConfig(&core.Credentials{APIKey: key, APISecret: secret})
//	client, err := coinbase.New(cfg, coinbase.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	btc, err := client.Accounts.GetByCurrency(ctx, "BTC", nil)
//	if core.IsNotFound(err) {
//	    // no BTC account
//	}
//
// Retries are left to the caller; see package retry.
package coinbase

const (
	resourceRoot = "/api/v3/brokerage"

	// maxLookups bounds concurrent paginated searches.
	maxLookups = 4
)
