// Package mongodb implements the store interfaces on MongoDB, including
// the translation of storage-agnostic query specs into native filters,
// sort documents, projections, and cursor windows.
package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourbase/tours-api/internal/query"
)

// mongoOperators maps spec operators to their MongoDB counterparts.
var mongoOperators = map[query.Operator]string{
	query.OpEq:  "$eq",
	query.OpGt:  "$gt",
	query.OpGte: "$gte",
	query.OpLt:  "$lt",
	query.OpLte: "$lte",
}

// specFilter translates the spec's conditions into a bson filter document.
// Conditions on the same field merge into one operator document, so
// price[gte]=500&price[lt]=1000 becomes {price: {$gte: 500, $lt: 1000}}.
// A repeated operator on one field cannot share a document; those clauses
// conjoin under $and so every constraint still applies. Fields unknown to
// the schema pass through untouched; the server decides what to do with
// them.
func specFilter(spec query.Spec) bson.M {
	filter := bson.M{}
	var conjoined []bson.M
	for _, c := range spec.Conditions {
		op, ok := mongoOperators[c.Op]
		if !ok {
			continue
		}
		doc, ok := filter[c.Field].(bson.M)
		if !ok {
			doc = bson.M{}
			filter[c.Field] = doc
		}
		if _, taken := doc[op]; taken {
			conjoined = append(conjoined, bson.M{c.Field: bson.M{op: c.Value}})
			continue
		}
		doc[op] = c.Value
	}

	if len(conjoined) > 0 {
		return bson.M{"$and": append([]bson.M{filter}, conjoined...)}
	}
	return filter
}

// findOptions translates the spec's sort, projection, and pagination window
// into native find options. The _id field survives every projection because
// the mapping layer needs it to rebuild domain records.
func findOptions(spec query.Spec) *options.FindOptions {
	opts := options.Find()

	if len(spec.SortKeys) > 0 {
		sort := make(bson.D, 0, len(spec.SortKeys))
		for _, k := range spec.SortKeys {
			dir := 1
			if k.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: k.Field, Value: dir})
		}
		opts.SetSort(sort)
	}

	if len(spec.Projection.Fields) > 0 {
		projection := bson.D{}
		for _, field := range spec.Projection.Fields {
			if spec.Projection.Exclude && field == "_id" {
				continue
			}
			value := 1
			if spec.Projection.Exclude {
				value = 0
			}
			projection = append(projection, bson.E{Key: field, Value: value})
		}
		opts.SetProjection(projection)
	}

	opts.SetSkip(spec.Skip())
	opts.SetLimit(int64(spec.Limit))

	return opts
}
