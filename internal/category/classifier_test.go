package category

import (
	"math"
	"sync"
	"testing"

	"github.com/mmynk/sotien/internal/money"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Đi cf vs bạn!!", "đi cafe với bạn"},
		{"tra sua tran chau", "trà sữa tran chau"},
		{"  Hoá   đơn, tháng 5 ", "hóa đơn tháng 5"},
		{"grap về nhà", "grab về nhà"},
		{"...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalize(tt.in); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name      string
		note      string
		amount    money.Cents
		wantCat   Category
		wantConf  float64
		wantModel string
	}{
		{
			name:      "empty note",
			note:      "   ",
			wantCat:   Other,
			wantConf:  0.1,
			wantModel: ModelKeyword,
		},
		{
			name:      "delivery brand beats transport",
			note:      "Grab Food giao tận nhà",
			wantCat:   Food,
			wantConf:  1,
			wantModel: ModelNgram,
		},
		{
			name:      "teencode phrase",
			note:      "di cf vs bạn",
			wantCat:   Food,
			wantConf:  0.9,
			wantModel: ModelNgram,
		},
		{
			name:      "clothing phrase is not food",
			note:      "ăn mặc đẹp",
			wantCat:   Shopping,
			wantConf:  1,
			wantModel: ModelNgram,
		},
		{
			name:      "food keyword",
			note:      "ăn phở 90k",
			amount:    9_000_000,
			wantCat:   Food,
			wantConf:  1,
			wantModel: ModelKeyword,
		},
		{
			name:      "generic purchase",
			note:      "mua tạp dề 50k",
			amount:    5_000_000,
			wantCat:   Shopping,
			wantConf:  1,
			wantModel: ModelKeyword,
		},
		{
			name:      "nothing matches",
			note:      "xyz",
			wantCat:   Other,
			wantConf:  0.2,
			wantModel: ModelKeyword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.note, tt.amount)
			if got.Category != tt.wantCat {
				t.Errorf("category = %s, want %s (suggestions %v)", got.Category, tt.wantCat, got.Suggestions)
			}
			if math.Abs(got.Confidence-tt.wantConf) > 1e-9 {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if got.Model != tt.wantModel {
				t.Errorf("model = %s, want %s", got.Model, tt.wantModel)
			}
			if len(got.Suggestions) == 0 || got.Suggestions[0].Category != got.Category {
				t.Errorf("first suggestion should be the prediction, got %v", got.Suggestions)
			}
		})
	}
}

func TestClassifyNegativeKeyword(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("mua bánh xe đạp", 0)
	if got.Category != Transportation {
		t.Fatalf("category = %s, want %s", got.Category, Transportation)
	}
	for _, s := range got.Suggestions {
		if s.Category == Food {
			t.Errorf("food should be excluded, got suggestions %v", got.Suggestions)
		}
	}
}

func TestClassifyAmountHints(t *testing.T) {
	c := NewClassifier()

	// Without an amount the soup wins; a 2 million dong price tag makes the
	// pot more plausible.
	if got := c.Classify("nồi lẩu", 0); got.Category != Food {
		t.Errorf("without amount: category = %s, want %s", got.Category, Food)
	}
	if got := c.Classify("nồi lẩu", 200_000_000); got.Category != Houseware {
		t.Errorf("with amount: category = %s, want %s", got.Category, Houseware)
	}
}

func TestClassifyWeakMatchFallsBack(t *testing.T) {
	c := NewClassifier()

	// "be" only matches as a substring and transport is unlikely at 10M.
	got := c.Classify("bebe", 1_000_000_000)
	if got.Category != Other || got.Confidence != 0.2 {
		t.Fatalf("got %s %v, want other 0.2", got.Category, got.Confidence)
	}
	if len(got.Suggestions) != 2 {
		t.Fatalf("suggestions = %v, want default plus one raw candidate", got.Suggestions)
	}
	if got.Suggestions[0] != (Suggestion{Category: Other, Confidence: 0.2}) {
		t.Errorf("first suggestion = %v, want other 0.2", got.Suggestions[0])
	}
	if got.Suggestions[1].Category != Transportation || math.Abs(got.Suggestions[1].Confidence-0.046) > 1e-9 {
		t.Errorf("second suggestion = %v, want transportation 0.046", got.Suggestions[1])
	}
}

func TestClassifySuggestions(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("bia xe sách thuốc đèn tủ vàng", 0)

	if len(got.Suggestions) != maxSuggestions {
		t.Fatalf("len(suggestions) = %d, want %d", len(got.Suggestions), maxSuggestions)
	}
	for i := 1; i < len(got.Suggestions); i++ {
		if got.Suggestions[i].Confidence > got.Suggestions[i-1].Confidence {
			t.Errorf("suggestions not ranked: %v", got.Suggestions)
		}
	}
	if got.Confidence >= 0.5 {
		t.Errorf("confidence = %v, want a split decision below 0.5", got.Confidence)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		amount money.Cents
		want   int
	}{
		{0, -1},
		{-100, -1},
		{1, 0},
		{4_999_999, 0},
		{5_000_000, 1},
		{20_000_000, 2},
		{100_000_000, 3},
		{499_999_999, 3},
		{500_000_000, 4},
		{1_000_000_000_000, 4},
	}
	for _, tt := range tests {
		got := tierFor(tt.amount)
		if tt.want < 0 {
			if got != nil {
				t.Errorf("tierFor(%d) = %+v, want nil", tt.amount, got)
			}
			continue
		}
		if got != &amountTiers[tt.want] {
			t.Errorf("tierFor(%d) picked the wrong tier, want index %d", tt.amount, tt.want)
		}
	}
}

func TestClassifierConcurrentUse(t *testing.T) {
	c := NewClassifier()
	notes := []string{"ăn phở 90k", "đổ xăng", "tiền điện tháng 5", "mua tạp dề", ""}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				note := notes[(i+j)%len(notes)]
				first := c.Classify(note, 0)
				second := c.Classify(note, 0)
				if first.Category != second.Category || first.Confidence != second.Confidence {
					t.Errorf("non-deterministic result for %q", note)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
