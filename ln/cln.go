package ln

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ClnClient talks to a Core Lightning REST shim on a trusted local network.
// No certificate or macaroon is involved.
type ClnClient struct {
	baseURL string
	http    *http.Client
}

func NewClnClient(host string) *ClnClient {
	return &ClnClient{
		baseURL: strings.TrimRight(host, "/"),
		http:    &http.Client{},
	}
}

func (c *ClnClient) call(ctx context.Context, method, path string, payload interface{}) (gjson.Result, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return gjson.Result{}, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return gjson.Result{}, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: non-JSON response from %s (status %d)", ErrProtocol, path, res.StatusCode)
	}
	return gjson.ParseBytes(raw), nil
}

func (c *ClnClient) GetInfo(ctx context.Context) (*NodeInfo, error) {
	res, err := c.call(ctx, http.MethodGet, "/v1/getinfo", nil)
	if err != nil {
		return nil, err
	}
	id := res.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("%w: getinfo response missing id", ErrProtocol)
	}
	return &NodeInfo{
		Alias:          res.Get("alias").String(),
		IdentityPubkey: id,
	}, nil
}

func (c *ClnClient) CreateInvoice(ctx context.Context, msat uint64, label, desc string) (string, error) {
	// CLN requires a unique label per invoice. When the caller supplies
	// none, one is synthesized from the clock; idempotency is the caller's
	// problem, not ours.
	if label == "" {
		label = fmt.Sprintf("lngateway-%d", time.Now().UnixNano())
	}
	res, err := c.call(ctx, http.MethodPost, "/v1/invoice", map[string]interface{}{
		"msatoshi":    msat,
		"label":       label,
		"description": desc,
	})
	if err != nil {
		return "", err
	}
	bolt11 := res.Get("bolt11").String()
	if bolt11 == "" {
		return "", fmt.Errorf("%w: invoice response missing bolt11", ErrProtocol)
	}
	return bolt11, nil
}

// GetBalance aggregates listFunds: only confirmed on-chain outputs count,
// and the msat sum is floored to sat granularity by integer division.
// Channel funds are the sum of our side of every channel, in msat.
func (c *ClnClient) GetBalance(ctx context.Context) (*Balance, error) {
	res, err := c.call(ctx, http.MethodGet, "/v1/listFunds", nil)
	if err != nil {
		return nil, err
	}

	var onchainMsat uint64
	for _, output := range res.Get("outputs").Array() {
		if output.Get("status").String() != "confirmed" {
			continue
		}
		onchainMsat += output.Get("amount_msat").Uint()
	}

	var channelMsat uint64
	for _, channel := range res.Get("channels").Array() {
		channelMsat += channel.Get("our_amount_msat").Uint()
	}

	return &Balance{
		OnchainSat:  onchainMsat / msatPerSat,
		ChannelMsat: channelMsat,
	}, nil
}

func (c *ClnClient) ListInvoices(ctx context.Context, limit int) ([]Invoice, error) {
	if limit <= 0 {
		limit = DefaultInvoiceLimit
	}
	res, err := c.call(ctx, http.MethodGet, "/v1/invoice/listInvoices", nil)
	if err != nil {
		return nil, err
	}

	// The shim has no limit parameter, truncate client-side.
	var invoices []Invoice
	for _, inv := range res.Get("invoices").Array() {
		if len(invoices) >= limit {
			break
		}
		invoices = append(invoices, Invoice{
			Hash:       inv.Get("payment_hash").String(),
			AmountMsat: inv.Get("amount_msat").Uint(),
			State:      clnInvoiceState(inv.Get("status").Int()),
			Bolt11:     optString(inv.Get("bolt11").String()),
			Desc:       optString(inv.Get("description").String()),
		})
	}
	return invoices, nil
}

// clnInvoiceState maps CLN's 3-way numeric invoice status. Intentionally a
// different shape than the lnd adapters' mappings.
func clnInvoiceState(code int64) string {
	switch code {
	case 0:
		return InvoiceStateUnpaid
	case 1:
		return InvoiceStatePaid
	case 2:
		return InvoiceStateExpired
	default:
		return InvoiceStateUnknown
	}
}

func (c *ClnClient) DecodeInvoice(ctx context.Context, bolt11 string) (*DecodedInvoice, error) {
	res, err := c.call(ctx, http.MethodGet, "/v1/pay/decodePay/"+url.PathEscape(bolt11), nil)
	if err != nil {
		return nil, err
	}
	if errField := res.Get("error"); errField.Exists() && errField.Type != gjson.Null {
		return nil, fmt.Errorf("%w: %s", ErrDecode, errField.String())
	}
	if res.Get("payee").String() == "" && res.Get("description").String() == "" && !res.Get("amount_msat").Exists() {
		return nil, fmt.Errorf("%w: unrecognized invoice", ErrDecode)
	}

	decoded := &DecodedInvoice{
		Desc:  optString(res.Get("description").String()),
		Payee: optString(res.Get("payee").String()),
	}
	if amount := res.Get("amount_msat"); amount.Exists() {
		msat := amount.Uint()
		decoded.AmountMsat = &msat
	}
	return decoded, nil
}

func (c *ClnClient) PayInvoice(ctx context.Context, bolt11 string) (*PaymentResult, error) {
	res, err := c.call(ctx, http.MethodPost, "/v1/pay", map[string]interface{}{
		"invoice": bolt11,
	})
	if err != nil {
		return nil, err
	}

	if errField := res.Get("error"); errField.Exists() && errField.Type != gjson.Null {
		return nil, &PaymentError{Reason: errField.String()}
	}

	hash := res.Get("payment_hash").String()
	sent := res.Get("amount_sent_msat")
	if hash == "" || !sent.Exists() {
		return nil, fmt.Errorf("%w: payment response missing payment_hash or amount_sent_msat", ErrProtocol)
	}

	result := &PaymentResult{
		Hash:       hash,
		AmountMsat: sent.Uint(),
	}
	// The routed amount exceeds the invoice amount by the fee.
	if amount := res.Get("amount_msat"); amount.Exists() && sent.Uint() >= amount.Uint() {
		fee := sent.Uint() - amount.Uint()
		result.FeeMsat = &fee
	}
	return result, nil
}
