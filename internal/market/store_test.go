package market

import (
	"errors"
	"testing"
	"time"
)

func sample(item, region string, price float64, volume int64) PriceSample {
	return PriceSample{
		ItemName:   item,
		Region:     region,
		Price:      price,
		Volume:     volume,
		ObservedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUpsert_ReplacesSameKey(t *testing.T) {
	st := NewStore()
	if err := st.Upsert(sample("Tritanium", "The Forge", 5.0, 100)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := st.Upsert(sample("Tritanium", "The Forge", 6.0, 200)); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}

	got := st.SamplesFor("Tritanium")
	if len(got) != 1 {
		t.Fatalf("SamplesFor returned %d samples, want 1", len(got))
	}
	if got[0].Price != 6.0 || got[0].Volume != 200 {
		t.Errorf("live sample = %+v, want replaced price 6.0 volume 200", got[0])
	}
}

func TestUpsert_DistinctRegionsCoexist(t *testing.T) {
	st := NewStore()
	st.Upsert(sample("Tritanium", "The Forge", 5.0, 100))
	st.Upsert(sample("Tritanium", "Domain", 6.0, 100))
	st.Upsert(sample("Pyerite", "The Forge", 12.0, 100))

	if n := len(st.SamplesFor("Tritanium")); n != 2 {
		t.Errorf("Tritanium samples = %d, want 2", n)
	}
	if st.Len() != 3 {
		t.Errorf("Len = %d, want 3", st.Len())
	}
}

func TestUpsert_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		s    PriceSample
	}{
		{"negative price", sample("Tritanium", "Domain", -1, 100)},
		{"negative volume", sample("Tritanium", "Domain", 5, -1)},
		{"empty item", sample("", "Domain", 5, 100)},
		{"empty region", sample("Tritanium", "", 5, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStore()
			err := st.Upsert(tt.s)
			if !errors.Is(err, ErrInvalidSample) {
				t.Fatalf("Upsert(%+v) err = %v, want ErrInvalidSample", tt.s, err)
			}
			if st.Len() != 0 {
				t.Errorf("rejected sample was stored")
			}
		})
	}
}

func TestUpsert_RejectionKeepsExisting(t *testing.T) {
	st := NewStore()
	st.Upsert(sample("Tritanium", "Domain", 5.0, 100))
	st.Upsert(PriceSample{ItemName: "Tritanium", Region: "Domain", Price: -3, Volume: 50})

	got := st.SamplesFor("Tritanium")
	if len(got) != 1 || got[0].Price != 5.0 {
		t.Errorf("existing sample affected by rejected upsert: %+v", got)
	}
}

func TestSamplesFor_UnknownItem(t *testing.T) {
	st := NewStore()
	if got := st.SamplesFor("Nope"); len(got) != 0 {
		t.Errorf("SamplesFor(unknown) = %v, want empty", got)
	}
}

func TestSnapshot_IsolatedFromLaterUpserts(t *testing.T) {
	st := NewStore()
	st.Upsert(sample("Tritanium", "The Forge", 5.0, 100))

	snap := st.Snapshot()
	st.Upsert(sample("Tritanium", "The Forge", 99.0, 100))
	st.Upsert(sample("Zydrine", "Domain", 1400, 100))

	if snap.Len() != 1 {
		t.Errorf("snapshot Len = %d, want 1", snap.Len())
	}
	got := snap.SamplesFor("Tritanium")
	if len(got) != 1 || got[0].Price != 5.0 {
		t.Errorf("snapshot observed later write: %+v", got)
	}
	if len(snap.SamplesFor("Zydrine")) != 0 {
		t.Error("snapshot observed item added after copy")
	}
}

func TestSnapshot_ItemsSorted(t *testing.T) {
	st := NewStore()
	st.Upsert(sample("Zydrine", "Domain", 1400, 100))
	st.Upsert(sample("Isogen", "Domain", 150, 100))
	st.Upsert(sample("Mexallon", "Domain", 80, 100))

	items := st.Snapshot().Items()
	want := []string{"Isogen", "Mexallon", "Zydrine"}
	if len(items) != len(want) {
		t.Fatalf("Items = %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("Items[%d] = %s, want %s", i, items[i], want[i])
		}
	}
}
