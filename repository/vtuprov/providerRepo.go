package vtuprov

import "context"

// DeliverReq describes one fulfilment request against the upstream VTU
// provider: airtime, a data bundle, a TV subscription, an electricity token
// or an exam result-checker PIN.
type DeliverReq struct {
	Category  string
	Provider  string // network, TV provider, disco or exam body id
	ItemCode  string // plan id; empty for airtime and electricity
	Recipient string // phone, smart card, meter number or exam number
	Amount    float64
	Reference string
}

type DeliverResp struct {
	ProviderRef string
	// Token carries prepaid electricity tokens and exam PINs.
	Token string
}

type CustomerInfo struct {
	Name string
}

type Repo interface {
	Deliver(ctx context.Context, req DeliverReq) (*DeliverResp, error)
	// ValidateCustomer resolves the account holder behind a smart card or
	// meter number before the user commits to a purchase.
	ValidateCustomer(ctx context.Context, provider, account string) (*CustomerInfo, error)
}
