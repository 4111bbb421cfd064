package offer

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/price-basket/internal/domain/item"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func repeat(it item.Name, n int) item.Basket {
	b := make(item.Basket, n)
	for i := range b {
		b[i] = it
	}
	return b
}

func TestAppleDiscount(t *testing.T) {
	tests := []struct {
		name   string
		basket item.Basket
		want   decimal.Decimal
	}{
		{name: "empty basket", basket: item.Basket{}, want: d("0")},
		{name: "no apples", basket: item.Basket{item.Bread, item.Soup, item.Milk}, want: d("0")},
		{name: "one apple", basket: item.Basket{item.Apples}, want: d("0.10")},
		{name: "three apples", basket: repeat(item.Apples, 3), want: d("0.30")},
		{name: "ten apples", basket: repeat(item.Apples, 10), want: d("1.00")},
		{
			name:   "other items do not matter",
			basket: item.Basket{item.Apples, item.Soup, item.Soup, item.Bread, item.Apples},
			want:   d("0.20"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AppleDiscount(tt.basket)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestAppleDiscount_Linear(t *testing.T) {
	for n := 0; n <= 25; n++ {
		got, err := AppleDiscount(repeat(item.Apples, n))
		require.NoError(t, err)
		want := d("0.10").Mul(decimal.NewFromInt(int64(n)))
		assert.True(t, want.Equal(got), "n=%d: expected %s, got %s", n, want, got)
	}
}

func TestSoupBreadDiscount(t *testing.T) {
	tests := []struct {
		name   string
		basket item.Basket
		want   decimal.Decimal
	}{
		{name: "empty basket", basket: item.Basket{}, want: d("0")},
		{name: "one soup one bread", basket: item.Basket{item.Soup, item.Bread}, want: d("0")},
		{name: "two soups no bread", basket: repeat(item.Soup, 2), want: d("0")},
		{name: "two soups one bread", basket: item.Basket{item.Soup, item.Soup, item.Bread}, want: d("0.40")},
		{name: "three soups one bread", basket: item.Basket{item.Soup, item.Bread, item.Soup, item.Soup}, want: d("0.40")},
		{
			name:   "four soups one bread limited by bread",
			basket: append(repeat(item.Soup, 4), item.Bread),
			want:   d("0.40"),
		},
		{
			name:   "four soups three breads limited by soup",
			basket: append(repeat(item.Soup, 4), repeat(item.Bread, 3)...),
			want:   d("0.80"),
		},
		{
			name:   "seven soups five breads",
			basket: append(repeat(item.Soup, 7), repeat(item.Bread, 5)...),
			want:   d("1.20"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SoupBreadDiscount(tt.basket)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestSoupBreadDiscount_Property(t *testing.T) {
	for soups := 0; soups <= 8; soups++ {
		for breads := 0; breads <= 5; breads++ {
			basket := append(repeat(item.Soup, soups), repeat(item.Bread, breads)...)
			got, err := SoupBreadDiscount(basket)
			require.NoError(t, err)

			want := decimal.Zero
			if soups >= 2 && breads > 0 {
				want = d("0.40").Mul(decimal.NewFromInt(int64(min(soups/2, breads))))
			}
			assert.True(t, want.Equal(got), "soups=%d breads=%d: expected %s, got %s", soups, breads, want, got)
		}
	}
}

func TestRules_NilBasket(t *testing.T) {
	_, err := AppleDiscount(nil)
	require.ErrorIs(t, err, item.ErrNilBasket)

	_, err = SoupBreadDiscount(nil)
	require.ErrorIs(t, err, item.ErrNilBasket)
}

func TestFormatDiscount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0.40", want: "-40p"},
		{amount: "0.05", want: "-5p"},
		{amount: "0.30", want: "-30p"},
		{amount: "0.99", want: "-99p"},
		{amount: "0.995", want: "-100p"},
		{amount: "0", want: "-0p"},
		{amount: "1", want: "-1.00£"},
		{amount: "1.00", want: "-1.00£"},
		{amount: "1.20", want: "-1.20£"},
		{amount: "12.5", want: "-12.50£"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDiscount(d(tt.amount)))
		})
	}
}

func newBuiltinRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(Builtin()...)
	require.NoError(t, err)
	return r
}

func TestRegistry_Discount(t *testing.T) {
	r := newBuiltinRegistry(t)

	tests := []struct {
		name   string
		basket item.Basket
		want   decimal.Decimal
	}{
		{name: "empty basket", basket: item.Basket{}, want: d("0")},
		{name: "milk only", basket: item.Basket{item.Milk}, want: d("0")},
		{name: "apples only", basket: repeat(item.Apples, 4), want: d("-0.40")},
		{
			name: "both offers",
			basket: item.Basket{
				item.Soup, item.Soup, item.Bread,
				item.Apples, item.Apples, item.Apples, item.Apples,
			},
			want: d("-0.80"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Discount(tt.basket)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestRegistry_UnregisteredItemsContributeNothing(t *testing.T) {
	apples, ok := newBuiltinRegistry(t).Lookup(item.Apples)
	require.True(t, ok)

	r, err := NewRegistry(apples)
	require.NoError(t, err)

	basket := item.Basket{item.Soup, item.Soup, item.Bread, item.Apples}
	got, err := r.Discount(basket)
	require.NoError(t, err)
	assert.True(t, d("-0.10").Equal(got), "got %s", got)

	lines, err := r.Describe(basket)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apples 10% off: -10p"}, lines)
}

func TestRegistry_Describe(t *testing.T) {
	r := newBuiltinRegistry(t)

	tests := []struct {
		name   string
		basket item.Basket
		want   []string
	}{
		{
			name:   "no offers",
			basket: item.Basket{item.Bread, item.Soup, item.Milk},
			want:   []string{NoOffers},
		},
		{
			name:   "three apples",
			basket: repeat(item.Apples, 3),
			want:   []string{"Apples 10% off: -30p"},
		},
		{
			name:   "single soup gets no soup line",
			basket: item.Basket{item.Soup, item.Bread},
			want:   []string{NoOffers},
		},
		{
			name: "both offers in registration order",
			basket: item.Basket{
				item.Soup, item.Soup, item.Bread, item.Milk,
				item.Apples, item.Apples, item.Apples, item.Apples,
			},
			want: []string{
				"Apples 10% off: -40p",
				"Buy 2 tins of soup and get a loaf of bread for half price: -40p",
			},
		},
		{
			name:   "pound formatting",
			basket: repeat(item.Apples, 12),
			want:   []string{"Apples 10% off: -1.20£"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Describe(tt.basket)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_NilBasketPropagates(t *testing.T) {
	r := newBuiltinRegistry(t)

	_, err := r.Discount(nil)
	require.ErrorIs(t, err, item.ErrNilBasket)

	_, err = r.Describe(nil)
	require.ErrorIs(t, err, item.ErrNilBasket)
}

func TestRegistry_NegativeRuleRejected(t *testing.T) {
	r, err := NewRegistry(Offer{
		Trigger: item.Milk,
		Label:   "broken",
		Rule: RuleFunc(func(item.Basket) (decimal.Decimal, error) {
			return d("-1"), nil
		}),
	})
	require.NoError(t, err)

	_, err = r.Discount(item.Basket{item.Milk})
	require.ErrorIs(t, err, ErrNegativeDiscount)
}

func TestRegistry_RuleErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	r, err := NewRegistry(Offer{
		Trigger: item.Milk,
		Rule: RuleFunc(func(item.Basket) (decimal.Decimal, error) {
			return decimal.Zero, boom
		}),
	})
	require.NoError(t, err)

	_, err = r.Describe(item.Basket{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "apply Milk offer")
}

func TestNewRegistry(t *testing.T) {
	offers := Builtin()

	_, err := NewRegistry(offers[0], offers[0])
	require.ErrorIs(t, err, ErrDuplicateTrigger)

	_, err = NewRegistry(Offer{Trigger: item.Bread})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no rule")

	r, err := NewRegistry(offers...)
	require.NoError(t, err)
	offers[0].Label = "mutated"
	got, ok := r.Lookup(item.Apples)
	require.True(t, ok)
	assert.Equal(t, "Apples 10% off", got.Label)

	_, ok = r.Lookup(item.Milk)
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	all := Builtin()

	got := Select(all, []item.Name{item.Soup})
	require.Len(t, got, 1)
	assert.Equal(t, item.Soup, got[0].Trigger)

	got = Select(all, []item.Name{item.Soup, item.Apples})
	require.Len(t, got, 2)
	assert.Equal(t, item.Apples, got[0].Trigger)
	assert.Equal(t, item.Soup, got[1].Trigger)

	assert.Empty(t, Select(all, nil))
}
