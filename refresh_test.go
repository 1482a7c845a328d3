package investmap

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// fakeRefresher records the refresh calls it receives.
type fakeRefresher struct {
	calls [][]string
	err   error
}

func (f *fakeRefresher) RefreshAssets(_ context.Context, symbols []string) error {
	f.calls = append(f.calls, slices.Clone(symbols))
	return f.err
}

func TestRefreshSymbols(t *testing.T) {
	records := []AssetRecord{
		purchase(1, "AAPL", 1, 1),
		purchase(2, "MSFT", 1, 1),
		sale(3, "AAPL", 1, 1),
		purchase(4, "TSLA", 1, 1),
	}
	sel, _ := NewSelection(4, 3, 1)
	if got, want := RefreshSymbols(records, sel), []string{"AAPL", "TSLA"}; !slices.Equal(got, want) {
		t.Errorf("RefreshSymbols() = %v, want %v", got, want)
	}
	if got := RefreshSymbols(records, nil); got != nil {
		t.Errorf("RefreshSymbols(nil) = %v, want nil", got)
	}
	// ids without a record are ignored
	sel, _ = NewSelection(99)
	if got := RefreshSymbols(records, sel); len(got) != 0 {
		t.Errorf("RefreshSymbols() = %v, want empty", got)
	}
}

func TestRefreshSelected_EmptySelectionSendsNothing(t *testing.T) {
	prices := &fakeRefresher{}
	reloaded := false
	issued, err := RefreshSelected(context.Background(), []AssetRecord{purchase(1, "AAPL", 1, 1)}, new(Selection), prices, func(context.Context) error {
		reloaded = true
		return nil
	})
	if err != nil || issued {
		t.Fatalf("RefreshSelected() = %v, %v, want false, nil", issued, err)
	}
	if len(prices.calls) != 0 {
		t.Errorf("refresh calls = %v, want none", prices.calls)
	}
	if reloaded {
		t.Errorf("reload was called")
	}
}

func TestRefreshSelected_Success(t *testing.T) {
	records := []AssetRecord{purchase(1, "AAPL", 1, 1), purchase(2, "MSFT", 1, 1)}
	sel, _ := NewSelection(1, 2)
	prices := &fakeRefresher{}
	reloads := 0

	issued, err := RefreshSelected(context.Background(), records, sel, prices, func(context.Context) error {
		reloads++
		if sel.Len() != 0 {
			t.Errorf("selection not cleared before reload: %v", sel.IDs())
		}
		return nil
	})
	if err != nil || !issued {
		t.Fatalf("RefreshSelected() = %v, %v, want true, nil", issued, err)
	}
	if len(prices.calls) != 1 || !slices.Equal(prices.calls[0], []string{"AAPL", "MSFT"}) {
		t.Errorf("refresh calls = %v, want [[AAPL MSFT]]", prices.calls)
	}
	if reloads != 1 {
		t.Errorf("reloads = %d, want 1", reloads)
	}
}

func TestRefreshSelected_FailureKeepsSelection(t *testing.T) {
	records := []AssetRecord{purchase(1, "AAPL", 1, 1)}
	sel, _ := NewSelection(1)
	prices := &fakeRefresher{err: ErrNetwork}
	reloads := 0

	issued, err := RefreshSelected(context.Background(), records, sel, prices, func(context.Context) error {
		reloads++
		return nil
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("RefreshSelected() error = %v, want ErrNetwork", err)
	}
	if issued {
		t.Errorf("issued = true, want false")
	}
	if !sel.Has(1) {
		t.Errorf("selection was cleared on failure")
	}
	if reloads != 0 {
		t.Errorf("reloads = %d, want 0", reloads)
	}
}

func TestRefreshSelected_ReloadFailure(t *testing.T) {
	records := []AssetRecord{purchase(1, "AAPL", 1, 1)}
	sel, _ := NewSelection(1)
	boom := errors.New("boom")

	issued, err := RefreshSelected(context.Background(), records, sel, &fakeRefresher{}, func(context.Context) error { return boom })
	if !issued || !errors.Is(err, boom) {
		t.Errorf("RefreshSelected() = %v, %v, want true, boom", issued, err)
	}
}
