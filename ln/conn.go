package ln

import (
	"context"
	"sync"
)

// Conn is the single long-lived handle to the active backend. The underlying
// client types are not proven safe for concurrent use, so every call takes
// the mutex for its full duration: acquire, call, release. A hung backend
// call therefore stalls all other requests, which is a known limitation.
type Conn struct {
	mu     sync.Mutex
	client LightningClient
}

func NewConn(client LightningClient) *Conn {
	return &Conn{client: client}
}

func (c *Conn) GetInfo(ctx context.Context) (*NodeInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.GetInfo(ctx)
}

func (c *Conn) CreateInvoice(ctx context.Context, msat uint64, label, desc string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.CreateInvoice(ctx, msat, label, desc)
}

func (c *Conn) GetBalance(ctx context.Context) (*Balance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.GetBalance(ctx)
}

func (c *Conn) ListInvoices(ctx context.Context, limit int) ([]Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.ListInvoices(ctx, limit)
}

func (c *Conn) DecodeInvoice(ctx context.Context, bolt11 string) (*DecodedInvoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.DecodeInvoice(ctx, bolt11)
}

func (c *Conn) PayInvoice(ctx context.Context, bolt11 string) (*PaymentResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.PayInvoice(ctx, bolt11)
}
