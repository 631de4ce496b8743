package mongodb

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tourbase/tours-api/internal/query"
)

func specFromRawQuery(t *testing.T, rawQuery string) query.Spec {
	t.Helper()
	params, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return query.FromValues(params)
}

func TestSpecFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		want     bson.M
	}{
		{
			name:     "no conditions",
			rawQuery: "",
			want:     bson.M{},
		},
		{
			name:     "equality",
			rawQuery: "difficulty=easy",
			want:     bson.M{"difficulty": bson.M{"$eq": "easy"}},
		},
		{
			name:     "range operator with numeric coercion",
			rawQuery: "price[gte]=500",
			want:     bson.M{"price": bson.M{"$gte": int64(500)}},
		},
		{
			name:     "same field conditions merge into one document",
			rawQuery: "price[gte]=500&price[lt]=1000",
			want:     bson.M{"price": bson.M{"$gte": int64(500), "$lt": int64(1000)}},
		},
		{
			name:     "repeated operator on one field keeps every constraint",
			rawQuery: "price[gte]=700&price[gte]=500",
			want: bson.M{"$and": []bson.M{
				{"price": bson.M{"$gte": int64(700)}},
				{"price": bson.M{"$gte": int64(500)}},
			}},
		},
		{
			name:     "mixed fields",
			rawQuery: "duration[lte]=7&difficulty=medium",
			want: bson.M{
				"duration":   bson.M{"$lte": int64(7)},
				"difficulty": bson.M{"$eq": "medium"},
			},
		},
		{
			name:     "reserved keys never filter",
			rawQuery: "page=3&sort=-price&limit=10&fields=name",
			want:     bson.M{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			spec := specFromRawQuery(t, tc.rawQuery)
			assert.Equal(t, tc.want, specFilter(spec))
		})
	}
}

func TestFindOptions_Sort(t *testing.T) {
	t.Parallel()

	t.Run("default orders newest first", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(specFromRawQuery(t, ""))
		assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
	})

	t.Run("explicit multi-key sort", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(specFromRawQuery(t, "sort=-price,name"))
		assert.Equal(t, bson.D{
			{Key: "price", Value: -1},
			{Key: "name", Value: 1},
		}, opts.Sort)
	})
}

func TestFindOptions_Projection(t *testing.T) {
	t.Parallel()

	t.Run("default excludes the version field", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(specFromRawQuery(t, ""))
		assert.Equal(t, bson.D{{Key: "__v", Value: 0}}, opts.Projection)
	})

	t.Run("inclusion list", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(specFromRawQuery(t, "fields=name,price"))
		assert.Equal(t, bson.D{
			{Key: "name", Value: 1},
			{Key: "price", Value: 1},
		}, opts.Projection)
	})

	t.Run("_id is never excluded", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(query.Spec{
			Projection: query.Projection{Fields: []string{"_id", "description"}, Exclude: true},
			Page:       1,
			Limit:      100,
		})
		assert.Equal(t, bson.D{{Key: "description", Value: 0}}, opts.Projection)
	})
}

func TestFindOptions_Window(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		wantSkip int64
		wantLim  int64
	}{
		{name: "defaults", rawQuery: "", wantSkip: 0, wantLim: 100},
		{name: "second page", rawQuery: "page=2&limit=5", wantSkip: 5, wantLim: 5},
		{name: "deep page", rawQuery: "page=40&limit=25", wantSkip: 975, wantLim: 25},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := findOptions(specFromRawQuery(t, tc.rawQuery))
			require.NotNil(t, opts.Skip)
			require.NotNil(t, opts.Limit)
			assert.Equal(t, tc.wantSkip, *opts.Skip)
			assert.Equal(t, tc.wantLim, *opts.Limit)
		})
	}
}
