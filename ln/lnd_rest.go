package ln

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// LndRestClient talks to lnd's REST proxy. The node certificate is pinned by
// content: the TLS handshake skips hostname verification but still validates
// the presented chain against the pinned root, since a typical lnd cert is
// self-signed for whatever name the node happened to have at setup time.
type LndRestClient struct {
	baseURL  string
	macaroon string
	http     *http.Client
}

func NewLndRestClient(host, macaroonHex, certPath string) (*LndRestClient, error) {
	certPath = strings.TrimSpace(certPath)
	if certPath == "" {
		// No safe fallback exists here: default trust would reject the
		// node's self-signed cert anyway.
		return nil, fmt.Errorf("%w: lnd-rest cert_path is required", ErrConfig)
	}

	macBytes, err := hex.DecodeString(macaroonHex)
	if err != nil {
		return nil, fmt.Errorf("%w: macaroon is not valid hex: %v", ErrCredential, err)
	}

	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading cert file %q: %v", ErrCredential, certPath, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(certPEM) {
		return nil, fmt.Errorf("%w: no PEM certificate in %q", ErrCredential, certPath)
	}

	tlsCfg := &tls.Config{
		// Chain validation happens in VerifyPeerCertificate against the
		// pinned pool; only the hostname check is bypassed.
		InsecureSkipVerify: true,
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			return verifyPinnedChain(rawCerts, pool)
		},
	}

	return &LndRestClient{
		baseURL:  strings.TrimRight(host, "/"),
		macaroon: hex.EncodeToString(macBytes),
		http: &http.Client{
			Transport: &http.Transport{TLSClientConfig: tlsCfg},
		},
	}, nil
}

func verifyPinnedChain(rawCerts [][]byte, pool *x509.CertPool) error {
	if len(rawCerts) == 0 {
		return fmt.Errorf("server presented no certificate")
	}
	leaf, err := x509.ParseCertificate(rawCerts[0])
	if err != nil {
		return err
	}
	intermediates := x509.NewCertPool()
	for _, raw := range rawCerts[1:] {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return err
		}
		intermediates.AddCert(cert)
	}
	_, err = leaf.Verify(x509.VerifyOptions{
		Roots:         pool,
		Intermediates: intermediates,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageAny},
	})
	return err
}

func (c *LndRestClient) call(ctx context.Context, method, path string, payload interface{}) (gjson.Result, error) {
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
	req.Header.Set("Grpc-Metadata-macaroon", c.macaroon)
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

func (c *LndRestClient) GetInfo(ctx context.Context) (*NodeInfo, error) {
	res, err := c.call(ctx, http.MethodGet, "/v1/getinfo", nil)
	if err != nil {
		return nil, err
	}
	pubkey := res.Get("identity_pubkey").String()
	if pubkey == "" {
		return nil, fmt.Errorf("%w: getinfo response missing identity_pubkey", ErrProtocol)
	}
	return &NodeInfo{
		Alias:          res.Get("alias").String(),
		IdentityPubkey: pubkey,
	}, nil
}

func (c *LndRestClient) CreateInvoice(ctx context.Context, msat uint64, label, desc string) (string, error) {
	// label is ignored, lnd has no caller-supplied label.
	_ = label
	res, err := c.call(ctx, http.MethodPost, "/v1/invoices", map[string]interface{}{
		"value_msat": msat,
		"memo":       desc,
	})
	if err != nil {
		return "", err
	}
	bolt11 := res.Get("payment_request").String()
	if bolt11 == "" {
		return "", fmt.Errorf("%w: invoice response missing payment_request", ErrProtocol)
	}
	return bolt11, nil
}

// GetBalance reads the two balance endpoints and passes the reported values
// through untouched: the wallet endpoint is already in sat, the channel
// endpoint already in msat.
func (c *LndRestClient) GetBalance(ctx context.Context) (*Balance, error) {
	wallet, err := c.call(ctx, http.MethodGet, "/v1/balance/wallet", nil)
	if err != nil {
		return nil, err
	}
	channels, err := c.call(ctx, http.MethodGet, "/v1/balance/channels", nil)
	if err != nil {
		return nil, err
	}
	return &Balance{
		OnchainSat:  wallet.Get("confirmed_balance").Uint(),
		ChannelMsat: channels.Get("local_balance").Uint(),
	}, nil
}

func (c *LndRestClient) ListInvoices(ctx context.Context, limit int) ([]Invoice, error) {
	if limit <= 0 {
		limit = DefaultInvoiceLimit
	}
	res, err := c.call(ctx, http.MethodGet, fmt.Sprintf("/v1/invoices?num_max_invoices=%d", limit), nil)
	if err != nil {
		return nil, err
	}

	var invoices []Invoice
	for _, inv := range res.Get("invoices").Array() {
		invoices = append(invoices, Invoice{
			Hash:       inv.Get("r_hash").String(),
			AmountMsat: inv.Get("value_msat").Uint(),
			State:      lndRestInvoiceState(inv.Get("settled").Bool()),
			Bolt11:     optString(inv.Get("payment_request").String()),
			Desc:       optString(inv.Get("memo").String()),
		})
	}
	return invoices, nil
}

// lndRestInvoiceState is a deliberate two-way mapping: the REST surface only
// exposes a settled flag, so unlike the gRPC adapter's four states this
// backend never reports expired or unknown.
func lndRestInvoiceState(settled bool) string {
	if settled {
		return InvoiceStatePaid
	}
	return InvoiceStateUnpaid
}

func (c *LndRestClient) DecodeInvoice(ctx context.Context, bolt11 string) (*DecodedInvoice, error) {
	res, err := c.call(ctx, http.MethodPost, "/v1/payreq", map[string]interface{}{
		"pay_req": bolt11,
	})
	if err != nil {
		return nil, err
	}
	if dest := res.Get("destination"); !dest.Exists() || dest.String() == "" {
		return nil, fmt.Errorf("%w: %s", ErrDecode, res.Get("error").String())
	}

	decoded := &DecodedInvoice{
		Desc:  optString(res.Get("description").String()),
		Payee: optString(res.Get("destination").String()),
	}
	if numSat := res.Get("num_satoshis").Uint(); numSat != 0 {
		msat := numSat * msatPerSat
		decoded.AmountMsat = &msat
	}
	return decoded, nil
}

func (c *LndRestClient) PayInvoice(ctx context.Context, bolt11 string) (*PaymentResult, error) {
	res, err := c.call(ctx, http.MethodPost, "/v1/sendpaymentsync", map[string]interface{}{
		"payment_request": bolt11,
	})
	if err != nil {
		return nil, err
	}

	// Success is decided by payload content: lnd reports payment failures
	// with HTTP 200 and a payment_error field.
	if perr := res.Get("payment_error").String(); perr != "" {
		return nil, &PaymentError{Reason: perr}
	}

	hash := res.Get("payment_hash").String()
	if hash == "" {
		return nil, fmt.Errorf("%w: payment response missing payment_hash", ErrProtocol)
	}
	amount := res.Get("amount_msat")
	if !amount.Exists() {
		return nil, fmt.Errorf("%w: payment response missing amount_msat", ErrProtocol)
	}

	result := &PaymentResult{
		Hash:       hash,
		AmountMsat: amount.Uint(),
	}
	if fee := res.Get("fee_msat"); fee.Exists() {
		feeMsat := fee.Uint()
		result.FeeMsat = &feeMsat
	}
	return result, nil
}
