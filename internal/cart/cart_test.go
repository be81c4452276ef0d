package cart

import (
	"testing"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
)

func testProduct(price int64) domain.Product {
	return domain.Product{ID: uuid.New(), Name: "Pizza Calabresa", BasePrice: price}
}

func TestAddLine_ComputesTotal(t *testing.T) {
	c := New()

	variations := []domain.SelectedVariation{
		{GroupName: "Tamanho", OptionName: "Grande", PriceAdjustment: 1000},
	}
	extras := []domain.Extra{
		{ID: uuid.New(), Name: "Bacon", Price: 300},
	}

	line := c.AddLine(testProduct(2490), 2, extras, variations, "sem cebola")

	want := (2490 + 1000 + 300) * 2
	if line.TotalPrice != int64(want) {
		t.Errorf("TotalPrice = %d, want %d", line.TotalPrice, want)
	}
	if line.UnitPrice() != 2490+1000+300 {
		t.Errorf("UnitPrice = %d, want %d", line.UnitPrice(), 2490+1000+300)
	}
	if line.Observations != "sem cebola" {
		t.Errorf("Observations = %q", line.Observations)
	}
}

func TestAddLine_ClampsQuantity(t *testing.T) {
	c := New()
	line := c.AddLine(testProduct(1000), 0, nil, nil, "")
	if line.Quantity != 1 || line.TotalPrice != 1000 {
		t.Errorf("line = %+v, want quantity 1 total 1000", line)
	}
}

func TestAddLine_NoMerging(t *testing.T) {
	c := New()
	p := testProduct(1000)

	c.AddLine(p, 1, nil, nil, "")
	c.AddLine(p, 1, nil, nil, "")

	if c.Len() != 2 {
		t.Errorf("identical adds must stay separate lines, got %d", c.Len())
	}
}

func TestUpdateQuantity_RescalesLockedPrice(t *testing.T) {
	c := New()
	p := testProduct(2490)

	variations := []domain.SelectedVariation{{OptionName: "Grande", PriceAdjustment: 1000}}
	c.AddLine(p, 2, nil, variations, "")

	// Catalog price changes must not affect the line; only the locked-in
	// unit price scales.
	if err := c.UpdateQuantity(0, 5); err != nil {
		t.Fatalf("update: %v", err)
	}

	lines := c.Lines()
	if lines[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", lines[0].Quantity)
	}
	if lines[0].TotalPrice != (2490+1000)*5 {
		t.Errorf("total = %d, want %d", lines[0].TotalPrice, (2490+1000)*5)
	}
}

func TestUpdateQuantity_BelowOneRemovesLine(t *testing.T) {
	c := New()
	c.AddLine(testProduct(1000), 1, nil, nil, "")
	c.AddLine(testProduct(2000), 3, nil, nil, "")

	if err := c.UpdateQuantity(0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if c.Lines()[0].Product.BasePrice != 2000 {
		t.Error("wrong line removed")
	}
}

func TestUpdateQuantity_BadIndex(t *testing.T) {
	c := New()
	c.AddLine(testProduct(1000), 1, nil, nil, "")

	if err := c.UpdateQuantity(-1, 2); err == nil {
		t.Error("expected error for negative index")
	}
	if err := c.UpdateQuantity(1, 2); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestRemoveLine(t *testing.T) {
	c := New()
	c.AddLine(testProduct(1000), 1, nil, nil, "")
	c.AddLine(testProduct(2000), 1, nil, nil, "")

	if err := c.RemoveLine(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
	if err := c.RemoveLine(5); err == nil {
		t.Error("expected error for bad index")
	}
}

func TestTotalAndItemCount(t *testing.T) {
	c := New()
	c.AddLine(testProduct(1000), 2, nil, nil, "")
	c.AddLine(testProduct(2500), 1, nil, nil, "")

	if got := c.Total(); got != 1000*2+2500 {
		t.Errorf("Total = %d, want %d", got, 1000*2+2500)
	}
	if got := c.ItemCount(); got != 3 {
		t.Errorf("ItemCount = %d, want 3", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.AddLine(testProduct(1000), 1, nil, nil, "")
	c.Clear()

	if c.Len() != 0 || c.Total() != 0 {
		t.Error("cart should be empty after Clear")
	}
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New()
	c.AddLine(testProduct(1000), 1, nil, nil, "")

	lines := c.Lines()
	lines[0].Quantity = 99

	if c.Lines()[0].Quantity != 1 {
		t.Error("Lines must return a snapshot, not internal state")
	}
}
