package paystackrepo

type InitTransactionReq struct {
	Reference   string
	Amount      float64 // naira; sent to Paystack in kobo
	Email       string
	CallbackURL string
}

type InitTransactionResp struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type Repo interface {
	InitTransaction(req InitTransactionReq) (*InitTransactionResp, error)
	VerifyWebhookSignature(sigHeader string, rawBody []byte) error
}
