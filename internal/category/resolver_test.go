package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		item        string
		rawCategory string
		want        model.Category
	}{
		{
			name: "known vendor",
			item: "스타벅스 아메리카노",
			want: model.CategoryFood,
		},
		{
			name: "korean keyword inside longer item",
			item: "친구들과 치킨 파티",
			want: model.CategoryFood,
		},
		{
			name: "english keyword is case insensitive",
			item: "NETFLIX Subscription",
			want: model.CategoryLeisure,
		},
		{
			name: "housing bill",
			item: "11월 월세",
			want: model.CategoryHousing,
		},
		{
			name: "coarse category word when no vendor matches",
			item: "동네 카페",
			want: model.CategoryFood,
		},
		{
			name:        "valid hint passes through when nothing matches",
			item:        "알 수 없는 가게",
			rawCategory: "쇼핑",
			want:        model.CategoryShopping,
		},
		{
			name:        "invalid hint falls back to unknown",
			item:        "PG_결제",
			rawCategory: "Entertainment",
			want:        model.CategoryUnknown,
		},
		{
			name: "no match and no hint",
			item: "기타",
			want: model.CategoryUnknown,
		},
		{
			name: "empty item",
			item: "",
			want: model.CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.item, tt.rawCategory)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOrdering(t *testing.T) {
	t.Run("earlier keyword shadows later one", func(t *testing.T) {
		// "gas bill" sits in the housing block, before the plain "gas"
		// transport keyword.
		assert.Equal(t, model.CategoryHousing, Resolve("gas bill autopay", ""))
		assert.Equal(t, model.CategoryTransport, Resolve("gas station", ""))
	})

	t.Run("item table wins over category table", func(t *testing.T) {
		// "cu" matches in the fine-grained table even though "cafe"
		// would match food in the coarse table.
		assert.Equal(t, model.CategoryShopping, Resolve("cute cafe", ""))
	})

	t.Run("hint is ignored when a keyword matches", func(t *testing.T) {
		assert.Equal(t, model.CategoryFood, Resolve("스타벅스", "교통비"))
	})
}

func TestResolveAll(t *testing.T) {
	rows := []model.RawRecord{
		{Category: "식비", Item: "점심 김치찌개", Amount: 9000},
		{Category: "", Item: "택시", Amount: 12000},
		{Category: "문화/여가", Item: "정체불명", Amount: 5000},
	}

	records := ResolveAll(rows)
	require.Len(t, records, 3)

	assert.Equal(t, model.CategoryFood, records[0].Resolved)
	assert.Equal(t, model.CategoryTransport, records[1].Resolved)
	assert.Equal(t, model.CategoryLeisure, records[2].Resolved)

	// Original row data is carried through untouched.
	assert.Equal(t, "점심 김치찌개", records[0].Item)
	assert.Equal(t, "식비", records[0].RawCategory)
	assert.InDelta(t, 9000, records[0].Amount, 0.001)
}
