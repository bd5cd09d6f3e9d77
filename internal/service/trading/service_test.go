package trading

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wonny/papertrade/internal/domain/order"
	"github.com/wonny/papertrade/internal/domain/quote"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// fakeLedger is an in-memory append-only ledger.
type fakeLedger struct {
	orders    []*order.Order
	appendErr error
}

func (f *fakeLedger) Append(ctx context.Context, o *order.Order) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeLedger) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	for _, o := range f.orders {
		if o.OrderID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeLedger) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range f.orders {
		if filter.Symbol != nil && o.Symbol != *filter.Symbol {
			continue
		}
		if filter.Side != nil && o.Side != *filter.Side {
			continue
		}
		out = append(out, o)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeLedger) AllHoldings(ctx context.Context) ([]order.Holding, error) {
	sums := make(map[string]int64)
	names := make(map[string]string)
	var symbols []string
	for _, o := range f.orders {
		if _, seen := sums[o.Symbol]; !seen {
			symbols = append(symbols, o.Symbol)
		}
		if o.Side == order.SideBuy {
			sums[o.Symbol] += o.Volume
		} else {
			sums[o.Symbol] -= o.Volume
		}
		names[o.Symbol] = o.Name
	}
	var out []order.Holding
	for _, sym := range symbols {
		if sums[sym] > 0 {
			out = append(out, order.Holding{Symbol: sym, Name: names[sym], Quantity: sums[sym]})
		}
	}
	return out, nil
}

// fakeCatalog resolves symbols from a fixed instrument map.
type fakeCatalog struct {
	stocks map[string]*stock.Stock
}

func (f *fakeCatalog) GetBySymbol(ctx context.Context, symbol string) (*stock.Stock, error) {
	s, ok := f.stocks[symbol]
	if !ok {
		return nil, stock.ErrStockNotFound
	}
	return s, nil
}

// fakeQuotes serves fixed prices and per-symbol failures.
type fakeQuotes struct {
	prices map[string]decimal.Decimal
	fail   map[string]bool
	calls  int
}

func (f *fakeQuotes) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	f.calls++
	if f.fail[symbol] {
		return nil, &quote.UnavailableError{Symbol: symbol}
	}
	price, ok := f.prices[symbol]
	if !ok {
		return nil, &quote.UnavailableError{Symbol: symbol}
	}
	return &quote.Quote{Symbol: symbol, Price: price}, nil
}

func newTestService() (*Service, *fakeLedger, *fakeQuotes) {
	ledger := &fakeLedger{}
	catalog := &fakeCatalog{stocks: map[string]*stock.Stock{
		"AAPL": {ID: uuid.New(), Symbol: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ"},
		"IBM":  {ID: uuid.New(), Symbol: "IBM", CompanyName: "IBM Corp.", Exchange: "NYSE"},
	}}
	quotes := &fakeQuotes{prices: map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(150),
		"IBM":  decimal.NewFromInt(200),
	}, fail: map[string]bool{}}
	return NewService(ledger, catalog, quotes), ledger, quotes
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("buy commits at quote price", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		o, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 100)
		if err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
		if o.Symbol != "AAPL" {
			t.Errorf("symbol = %s, want AAPL", o.Symbol)
		}
		if o.Name != "Apple Inc." {
			t.Errorf("name = %s, want Apple Inc.", o.Name)
		}
		if !o.Price.Equal(decimal.NewFromInt(150)) {
			t.Errorf("price = %s, want 150", o.Price)
		}
		if o.OrderID == uuid.Nil {
			t.Error("order ID not assigned")
		}
		if o.CreatedTS.IsZero() {
			t.Error("commit timestamp not assigned")
		}
		if len(ledger.orders) != 1 {
			t.Errorf("ledger has %d orders, want 1", len(ledger.orders))
		}
	})

	t.Run("symbol is trimmed and uppercased", func(t *testing.T) {
		svc, _, _ := newTestService()

		o, err := svc.PlaceOrder(ctx, "  aapl  ", order.SideBuy, 10)
		if err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
		if o.Symbol != "AAPL" {
			t.Errorf("symbol = %s, want AAPL", o.Symbol)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		cases := []struct {
			name    string
			symbol  string
			side    string
			volume  int64
			wantErr error
		}{
			{"empty symbol", "   ", order.SideBuy, 10, order.ErrEmptySymbol},
			{"bad side", "AAPL", "HOLD", 10, order.ErrInvalidSide},
			{"zero volume", "AAPL", order.SideBuy, 0, order.ErrInvalidVolume},
			{"negative volume", "AAPL", order.SideBuy, -5, order.ErrInvalidVolume},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.PlaceOrder(ctx, tc.symbol, tc.side, tc.volume)
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("err = %v, want %v", err, tc.wantErr)
				}
			})
		}
		if len(ledger.orders) != 0 {
			t.Errorf("ledger has %d orders, want 0", len(ledger.orders))
		}
	})

	t.Run("unknown symbol never reaches ledger", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		_, err := svc.PlaceOrder(ctx, "ZZZZ", order.SideBuy, 10)
		if !errors.Is(err, stock.ErrStockNotFound) {
			t.Errorf("err = %v, want ErrStockNotFound", err)
		}
		if len(ledger.orders) != 0 {
			t.Errorf("ledger has %d orders, want 0", len(ledger.orders))
		}
	})

	t.Run("quote failure rejects order", func(t *testing.T) {
		svc, ledger, quotes := newTestService()
		quotes.fail["AAPL"] = true

		_, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 10)
		if !errors.Is(err, quote.ErrUnavailable) {
			t.Errorf("err = %v, want ErrUnavailable", err)
		}
		if len(ledger.orders) != 0 {
			t.Errorf("ledger has %d orders, want 0", len(ledger.orders))
		}
	})

	t.Run("zero quote price rejects order", func(t *testing.T) {
		svc, ledger, quotes := newTestService()
		quotes.prices["AAPL"] = decimal.Zero

		_, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 10)
		if !errors.Is(err, quote.ErrUnavailable) {
			t.Errorf("err = %v, want ErrUnavailable", err)
		}
		if len(ledger.orders) != 0 {
			t.Errorf("ledger has %d orders, want 0", len(ledger.orders))
		}
	})

	t.Run("sell within holdings commits", func(t *testing.T) {
		svc, _, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 100); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 30); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		holdings, err := svc.CurrentHoldings(ctx, "AAPL")
		if err != nil {
			t.Fatalf("CurrentHoldings failed: %v", err)
		}
		if holdings != 70 {
			t.Errorf("holdings = %d, want 70", holdings)
		}
	})

	t.Run("oversell rejected with holdings detail", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 100); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 30); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		_, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 200)
		var holdErr *order.InsufficientHoldingsError
		if !errors.As(err, &holdErr) {
			t.Fatalf("err = %v, want InsufficientHoldingsError", err)
		}
		if holdErr.Symbol != "AAPL" || holdErr.Requested != 200 || holdErr.Available != 70 {
			t.Errorf("error detail = %+v, want {AAPL 200 70}", holdErr)
		}
		if len(ledger.orders) != 2 {
			t.Errorf("ledger has %d orders, want 2", len(ledger.orders))
		}
	})

	t.Run("concurrent sells never oversell", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 100); err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		// 100 held, each SELL asks for 60: at most one can commit.
		const sellers = 50
		var wg sync.WaitGroup
		var committed atomic.Int64
		for i := 0; i < sellers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 60)
				if err == nil {
					committed.Add(1)
					return
				}
				var holdErr *order.InsufficientHoldingsError
				if !errors.As(err, &holdErr) {
					t.Errorf("err = %v, want InsufficientHoldingsError", err)
				}
			}()
		}
		wg.Wait()

		if got := committed.Load(); got != 1 {
			t.Errorf("%d sells committed, want 1", got)
		}
		holdings, err := svc.CurrentHoldings(ctx, "AAPL")
		if err != nil {
			t.Fatalf("CurrentHoldings failed: %v", err)
		}
		if holdings != 40 {
			t.Errorf("holdings = %d, want 40", holdings)
		}
		if holdings < 0 {
			t.Errorf("holdings went negative: %d", holdings)
		}
		if len(ledger.orders) != 2 {
			t.Errorf("ledger has %d orders, want 2", len(ledger.orders))
		}
	})

	t.Run("sell from empty holdings rejected", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		_, err := svc.PlaceOrder(ctx, "IBM", order.SideSell, 1)
		var holdErr *order.InsufficientHoldingsError
		if !errors.As(err, &holdErr) {
			t.Fatalf("err = %v, want InsufficientHoldingsError", err)
		}
		if holdErr.Available != 0 {
			t.Errorf("available = %d, want 0", holdErr.Available)
		}
		if len(ledger.orders) != 0 {
			t.Errorf("ledger has %d orders, want 0", len(ledger.orders))
		}
	})
}

func TestCurrentHoldings(t *testing.T) {
	ctx := context.Background()

	t.Run("folds buys and sells", func(t *testing.T) {
		svc, _, _ := newTestService()

		moves := []struct {
			side   string
			volume int64
		}{
			{order.SideBuy, 100},
			{order.SideSell, 30},
			{order.SideBuy, 50},
			{order.SideSell, 20},
		}
		for _, m := range moves {
			if _, err := svc.PlaceOrder(ctx, "AAPL", m.side, m.volume); err != nil {
				t.Fatalf("PlaceOrder %s %d failed: %v", m.side, m.volume, err)
			}
		}

		holdings, err := svc.CurrentHoldings(ctx, "AAPL")
		if err != nil {
			t.Fatalf("CurrentHoldings failed: %v", err)
		}
		if holdings != 100 {
			t.Errorf("holdings = %d, want 100", holdings)
		}
	})

	t.Run("symbol is normalized", func(t *testing.T) {
		svc, _, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 70); err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		holdings, err := svc.CurrentHoldings(ctx, " aapl ")
		if err != nil {
			t.Fatalf("CurrentHoldings failed: %v", err)
		}
		if holdings != 70 {
			t.Errorf("holdings = %d, want 70", holdings)
		}
	})

	t.Run("empty symbol rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		if _, err := svc.CurrentHoldings(ctx, "  "); !errors.Is(err, order.ErrEmptySymbol) {
			t.Errorf("err = %v, want ErrEmptySymbol", err)
		}
	})

	t.Run("unknown symbol yields zero", func(t *testing.T) {
		svc, _, _ := newTestService()

		holdings, err := svc.CurrentHoldings(ctx, "MSFT")
		if err != nil {
			t.Fatalf("CurrentHoldings failed: %v", err)
		}
		if holdings != 0 {
			t.Errorf("holdings = %d, want 0", holdings)
		}
	})

	t.Run("reads do not change the ledger", func(t *testing.T) {
		svc, ledger, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 10); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := svc.CurrentHoldings(ctx, "AAPL"); err != nil {
				t.Fatalf("CurrentHoldings failed: %v", err)
			}
		}
		if len(ledger.orders) != 1 {
			t.Errorf("ledger has %d orders, want 1", len(ledger.orders))
		}
	})
}

func TestCurrentPortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("prices positive holdings", func(t *testing.T) {
		svc, _, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 100); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 30); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		p, err := svc.CurrentPortfolio(ctx)
		if err != nil {
			t.Fatalf("CurrentPortfolio failed: %v", err)
		}
		if len(p.Items) != 1 {
			t.Fatalf("portfolio has %d items, want 1", len(p.Items))
		}
		item := p.Items[0]
		if item.Symbol != "AAPL" || item.Quantity != 70 {
			t.Errorf("item = %+v, want AAPL qty 70", item)
		}
		if !item.MarketValue.Equal(decimal.NewFromInt(10500)) {
			t.Errorf("market value = %s, want 10500", item.MarketValue)
		}
		if !p.TotalValue.Equal(decimal.NewFromInt(10500)) {
			t.Errorf("total = %s, want 10500", p.TotalValue)
		}
	})

	t.Run("liquidated symbols excluded", func(t *testing.T) {
		svc, _, _ := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 50); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 50); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		p, err := svc.CurrentPortfolio(ctx)
		if err != nil {
			t.Fatalf("CurrentPortfolio failed: %v", err)
		}
		if len(p.Items) != 0 {
			t.Errorf("portfolio has %d items, want 0", len(p.Items))
		}
		if !p.TotalValue.IsZero() {
			t.Errorf("total = %s, want 0", p.TotalValue)
		}
	})

	t.Run("non-positive quote keeps holding unpriced", func(t *testing.T) {
		svc, _, quotes := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 70); err != nil {
			t.Fatalf("buy AAPL failed: %v", err)
		}
		if _, err := svc.PlaceOrder(ctx, "IBM", order.SideBuy, 10); err != nil {
			t.Fatalf("buy IBM failed: %v", err)
		}
		quotes.prices["IBM"] = decimal.Zero

		p, err := svc.CurrentPortfolio(ctx)
		if err != nil {
			t.Fatalf("CurrentPortfolio failed: %v", err)
		}
		for _, it := range p.Items {
			if it.Symbol == "IBM" {
				if it.Priced {
					t.Error("IBM should be unpriced")
				}
				if !it.MarketValue.IsZero() {
					t.Errorf("IBM market value = %s, want 0", it.MarketValue)
				}
			}
		}
		if !p.TotalValue.Equal(decimal.NewFromInt(10500)) {
			t.Errorf("total = %s, want 10500", p.TotalValue)
		}
	})

	t.Run("failed quote keeps holding unpriced", func(t *testing.T) {
		svc, _, quotes := newTestService()

		if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 70); err != nil {
			t.Fatalf("buy AAPL failed: %v", err)
		}
		if _, err := svc.PlaceOrder(ctx, "IBM", order.SideBuy, 10); err != nil {
			t.Fatalf("buy IBM failed: %v", err)
		}
		quotes.fail["IBM"] = true

		p, err := svc.CurrentPortfolio(ctx)
		if err != nil {
			t.Fatalf("CurrentPortfolio failed: %v", err)
		}
		if len(p.Items) != 2 {
			t.Fatalf("portfolio has %d items, want 2", len(p.Items))
		}

		bysym := make(map[string]order.PortfolioItem)
		for _, it := range p.Items {
			bysym[it.Symbol] = it
		}
		if !bysym["AAPL"].Priced {
			t.Error("AAPL should be priced")
		}
		if bysym["IBM"].Priced {
			t.Error("IBM should be unpriced")
		}
		if !bysym["IBM"].MarketValue.IsZero() {
			t.Errorf("IBM market value = %s, want 0", bysym["IBM"].MarketValue)
		}
		// Total covers only the priced item: 70 * 150.
		if !p.TotalValue.Equal(decimal.NewFromInt(10500)) {
			t.Errorf("total = %s, want 10500", p.TotalValue)
		}
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideBuy, 100); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, "IBM", order.SideBuy, 10); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, "AAPL", order.SideSell, 20); err != nil {
		t.Fatalf("sell failed: %v", err)
	}

	t.Run("filter by symbol normalizes", func(t *testing.T) {
		sym := " aapl "
		orders, err := svc.ListOrders(ctx, order.ListFilter{Symbol: &sym})
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(orders) != 2 {
			t.Errorf("got %d orders, want 2", len(orders))
		}
	})

	t.Run("filter by side", func(t *testing.T) {
		side := order.SideSell
		orders, err := svc.ListOrders(ctx, order.ListFilter{Side: &side})
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(orders) != 1 {
			t.Errorf("got %d orders, want 1", len(orders))
		}
	})

	t.Run("invalid side rejected", func(t *testing.T) {
		side := "HOLD"
		if _, err := svc.ListOrders(ctx, order.ListFilter{Side: &side}); !errors.Is(err, order.ErrInvalidSide) {
			t.Errorf("err = %v, want ErrInvalidSide", err)
		}
	})
}
