package ln

import (
	"context"
)

// Invoice states as reported through the unified contract. The LND gRPC
// adapter additionally emits the backend's native open/settled/canceled/
// accepted states; any unrecognized code surfaces as "unknown: <code>".
const (
	InvoiceStateUnpaid  = "unpaid"
	InvoiceStatePaid    = "paid"
	InvoiceStateExpired = "expired"
	InvoiceStateUnknown = "unknown"
)

const (
	DefaultInvoiceLimit = 10
	msatPerSat          = 1000
)

type NodeInfo struct {
	Alias          string `json:"alias"`
	IdentityPubkey string `json:"identity_pubkey"`
}

// Balance reports on-chain funds in satoshis and channel funds in
// millisatoshis. The asymmetry matches each side's native precision and is
// part of the contract, do not normalize further.
type Balance struct {
	OnchainSat  uint64 `json:"onchain_sat"`
	ChannelMsat uint64 `json:"channel_msat"`
}

type Invoice struct {
	Hash       string  `json:"hash"`
	AmountMsat uint64  `json:"amount_msat"`
	State      string  `json:"state"`
	Bolt11     *string `json:"bolt11,omitempty"`
	Desc       *string `json:"desc,omitempty"`
}

type DecodedInvoice struct {
	AmountMsat *uint64 `json:"amount_msat,omitempty"`
	Desc       *string `json:"desc,omitempty"`
	Payee      *string `json:"payee,omitempty"`
}

type PaymentResult struct {
	Hash       string  `json:"hash"`
	AmountMsat uint64  `json:"amount_msat"`
	FeeMsat    *uint64 `json:"fee_msat,omitempty"`
}

// LightningClient is the capability contract every backend adapter
// implements. All methods may perform blocking network I/O.
//
// CreateInvoice accepts a label for interface symmetry; only backends whose
// protocol requires a caller-supplied label (CLN) honor it, the others ignore
// it or synthesize their own. ListInvoices returns backend-native ordering,
// callers must not assume chronological order across backends.
type LightningClient interface {
	GetInfo(ctx context.Context) (*NodeInfo, error)
	CreateInvoice(ctx context.Context, msat uint64, label, desc string) (string, error)
	GetBalance(ctx context.Context) (*Balance, error)
	ListInvoices(ctx context.Context, limit int) ([]Invoice, error)
	DecodeInvoice(ctx context.Context, bolt11 string) (*DecodedInvoice, error)
	PayInvoice(ctx context.Context, bolt11 string) (*PaymentResult, error)
}
