package coinbase

import (
	"context"
	"iter"
	"net/url"

	"github.com/sourcegraph/conc/pool"

	"cbadv/pkg/core"
	"cbadv/pkg/exchange"
)

const accountsResource = resourceRoot + "/accounts"

// ListAccountsParams selects a page of the account listing.
type ListAccountsParams struct {
	// Limit is the page size; zero keeps the server default.
	Limit int
	// Cursor resumes the listing; empty starts from the first page.
	Cursor string
}

// Encode renders the params as a query string, e.g. "limit=5&cursor=abc".
func (p *ListAccountsParams) Encode() string {
	if p == nil {
		return ""
	}
	return core.NewParams().
		SetInt("limit", p.Limit).
		Set("cursor", p.Cursor).
		Encode()
}

// AccountAPI reads the user's currency accounts.
type AccountAPI struct {
	transport exchange.Transport
	maxPages  int
}

// NewAccountAPI creates an AccountAPI. maxPages bounds lookups by currency; zero is unbounded.
func NewAccountAPI(transport exchange.Transport, maxPages int) *AccountAPI {
	return &AccountAPI{transport: transport, maxPages: maxPages}
}

// Get fetches one account by UUID.
func (a *AccountAPI) Get(ctx context.Context, accountUUID string) (*core.Account, error) {
	resp, err := a.transport.Get(ctx, accountsResource+"/"+url.PathEscape(accountUUID), "")
	if err != nil {
		return nil, err
	}

	var out core.AccountResponse
	if err := resp.Decode(&out, "account object"); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

// List fetches one page of accounts.
func (a *AccountAPI) List(ctx context.Context, params *ListAccountsParams) (*core.ListedAccounts, error) {
	resp, err := a.transport.Get(ctx, accountsResource, params.Encode())
	if err != nil {
		return nil, err
	}

	var out core.ListedAccounts
	if err := resp.Decode(&out, "accounts listing"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AccountAPI) pages(params *ListAccountsParams) exchange.ListFunc[core.Account] {
	base := ListAccountsParams{}
	if params != nil {
		base = *params
	}
	return func(ctx context.Context, cursor string) (*exchange.Page[core.Account], error) {
		p := base
		if cursor != "" {
			p.Cursor = cursor
		}
		listed, err := a.List(ctx, &p)
		if err != nil {
			return nil, err
		}
		return &exchange.Page[core.Account]{
			Items:   listed.Accounts,
			HasNext: listed.HasNext,
			Cursor:  listed.Cursor,
		}, nil
	}
}

// GetByCurrency walks the account listing page by page and returns the first
// account whose currency equals currency. This can cost one request per page;
// prefer Get when the UUID is known.
func (a *AccountAPI) GetByCurrency(ctx context.Context, currency string, params *ListAccountsParams) (*core.Account, error) {
	return exchange.FindFirst(ctx, a.pages(params),
		func(acc *core.Account) bool { return acc.Currency == currency },
		exchange.WithMaxPages(a.maxPages))
}

// All iterates every account across pages.
func (a *AccountAPI) All(ctx context.Context, params *ListAccountsParams) iter.Seq2[*core.Account, error] {
	return exchange.All(ctx, a.pages(params), exchange.WithMaxPages(a.maxPages))
}

// GetByCurrencies runs independent GetByCurrency searches concurrently.
// The first failing search cancels the others and its error is returned.
func (a *AccountAPI) GetByCurrencies(ctx context.Context, currencies []string, params *ListAccountsParams) (map[string]*core.Account, error) {
	if len(currencies) == 0 {
		return nil, core.NewError(core.ErrorTypeNothingToDo, "no currencies")
	}

	p := pool.NewWithResults[*core.Account]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(maxLookups)

	for _, currency := range currencies {
		p.Go(func(ctx context.Context) (*core.Account, error) {
			return a.GetByCurrency(ctx, currency, params)
		})
	}

	found, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(map[string]*core.Account, len(found))
	for _, acc := range found {
		out[acc.Currency] = acc
	}
	return out, nil
}
