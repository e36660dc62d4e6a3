package segment

import (
	"context"
	"reflect"
	"testing"

	"github.com/mmynk/sotien/internal/amount"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/money"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "sentence punctuation",
			text: "mua tạp dề 50k. ăn phở 90k",
			want: []string{"mua tạp dề 50k", "ăn phở 90k"},
		},
		{
			name: "line breaks",
			text: "cafe 30k\r\n\n  gửi xe 5k  ",
			want: []string{"cafe 30k", "gửi xe 5k"},
		},
		{
			name: "conjunctions",
			text: "ăn sáng 30k và cafe 25k rồi đổ xăng 50k",
			want: []string{"ăn sáng 30k", "cafe 25k", "đổ xăng 50k"},
		},
		{
			name: "conjunction needs whitespace",
			text: "mua vàng 5 triệu",
			want: []string{"mua vàng 5 triệu"},
		},
		{
			name: "full width delimiters",
			text: "trà sữa 45k；bánh mì 20k！",
			want: []string{"trà sữa 45k", "bánh mì 20k"},
		},
		{
			name: "number separators survive",
			text: "tiền nhà 1.500.000, trà đá 1,5k",
			want: []string{"tiền nhà 1.500.000", "trà đá 1,5k"},
		},
		{
			name: "empty",
			text: " ... \n ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func newAnalyzer() *Analyzer {
	return NewAnalyzer(amount.NewExtractor(), category.NewKeywordPredictor(category.NewClassifier()))
}

func TestAnalyze(t *testing.T) {
	a := newAnalyzer()
	got := a.Analyze(context.Background(), "mua tạp dề 50k. ăn phở 90k, cảm ơn nhé")

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(got), got)
	}

	want := []struct {
		sentence string
		amount   money.Cents
		category category.Category
	}{
		{"mua tạp dề 50k", 5_000_000, category.Shopping},
		{"ăn phở 90k", 9_000_000, category.Food},
	}
	for i, w := range want {
		c := got[i]
		if c.Sentence != w.sentence || c.Amount != w.amount || c.Category != w.category {
			t.Errorf("candidate %d = {%q %d %s}, want {%q %d %s}",
				i, c.Sentence, c.Amount, c.Category, w.sentence, w.amount, w.category)
		}
		if c.Method != amount.MethodK {
			t.Errorf("candidate %d method = %s, want %s", i, c.Method, amount.MethodK)
		}
	}
}

func TestAnalyzeNoAmounts(t *testing.T) {
	a := newAnalyzer()
	if got := a.Analyze(context.Background(), "hôm nay trời đẹp"); len(got) != 0 {
		t.Errorf("got %d candidates, want none", len(got))
	}
}

func TestAnalyzeOne(t *testing.T) {
	a := newAnalyzer()

	got := a.AnalyzeOne(context.Background(), "  đổ xăng 50 nghìn ")
	if got.Sentence != "đổ xăng 50 nghìn" {
		t.Errorf("sentence = %q", got.Sentence)
	}
	if got.Amount != 5_000_000 || got.Method != amount.MethodNghin {
		t.Errorf("amount = %d (%s), want 5000000 (%s)", got.Amount, got.Method, amount.MethodNghin)
	}
	if got.Category != category.Transportation {
		t.Errorf("category = %s, want %s", got.Category, category.Transportation)
	}

	none := a.AnalyzeOne(context.Background(), "đổ xăng")
	if none.Amount != 0 || none.Method != amount.MethodNotFound {
		t.Errorf("amount = %d (%s), want 0 (%s)", none.Amount, none.Method, amount.MethodNotFound)
	}
}
