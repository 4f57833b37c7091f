package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openadr/vtn/internal/core/policy"
)

// predicateFilter translates a policy.Predicate into the bson.M a Find
// pushes down to Mongo, mirroring Predicate.Matches' disjunction of
// clauses (design note: "predicate pushdown", spec §4.4). venField lets
// each repository name the concrete document field a VenIDIn clause
// constrains, since entities denormalize VEN ownership differently:
// Program carries a bound_ven_ids array, Report/Resource a single ven_id.
func predicateFilter(pred policy.Predicate, venField string) bson.M {
	if pred.All {
		return bson.M{}
	}
	if len(pred.Clauses) == 0 {
		return bson.M{"_id": bson.M{"$in": bson.A{}}}
	}

	or := make(bson.A, 0, len(pred.Clauses)*2)
	for _, c := range pred.Clauses {
		switch c.Kind {
		case policy.ClauseBusinessIDIn:
			or = append(or, bson.M{"business_id": bson.M{"$in": c.IDs}})
			if c.NullMatches {
				or = append(or, bson.M{"business_id": bson.M{"$exists": false}})
			}
		case policy.ClauseVenIDIn:
			or = append(or, bson.M{venField: bson.M{"$in": c.IDs}})
			if c.NullMatches {
				or = append(or, bson.M{venField: bson.M{"$exists": false}})
			}
		case policy.ClauseProgramIDIn:
			or = append(or, bson.M{"program_id": bson.M{"$in": c.IDs}})
		case policy.ClauseIDIn:
			or = append(or, bson.M{"_id": bson.M{"$in": c.IDs}})
		}
	}
	return bson.M{"$or": or}
}
