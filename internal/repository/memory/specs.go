package memory

import (
	"sort"
	"time"

	"customs-evidence-be/internal/repository/specification"
)

// The memory repositories interpret the same specification values the GORM
// implementations do, so services run unchanged against either backend.
// Only the specification types the services actually use are understood.

type getter func(field string) interface{}

type memQuery struct {
	preds      []func(g getter) bool
	orderField string
	orderDesc  bool
	limit      int
}

func buildQuery(specs ...specification.Specification) *memQuery {
	q := &memQuery{limit: -1}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByTenant:
			q.eq("tenant_id", v.TenantId)
		case specification.ByDocumentId:
			q.eq("document_id", v.DocumentId)
		case specification.ByChunkId:
			q.eq("chunk_id", v.ChunkId)
		case specification.ByChunkIds:
			ids := v.ChunkIds
			q.preds = append(q.preds, func(g getter) bool {
				id, _ := g("chunk_id").(string)
				for _, want := range ids {
					if id == want {
						return true
					}
				}
				return false
			})
		case specification.ByCitationId:
			q.eq("citation_id", v.CitationId)
		case specification.ByRunId:
			q.eq("run_id", v.RunId)
		case specification.ByBundleId:
			q.eq("bundle_id", v.BundleId)
		case specification.ByStatus:
			q.eq("status", v.Status)
		case specification.ByCorpusVersion:
			q.eq("corpus_version", v.CorpusVersion)
		case specification.IndexPendingOnly:
			q.eq("index_pending", true)
		case specification.FilterBy:
			q.eq(v.Field, v.Value)
		case specification.OrderBy:
			q.orderField = v.Field
			q.orderDesc = v.Desc
		case specification.Limit:
			q.limit = v.N
		}
	}
	return q
}

func (q *memQuery) eq(field string, value interface{}) {
	q.preds = append(q.preds, func(g getter) bool {
		return g(field) == value
	})
}

func (q *memQuery) matches(g getter) bool {
	for _, pred := range q.preds {
		if !pred(g) {
			return false
		}
	}
	return true
}

func less(a, b interface{}) bool {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return av < bv
	case int:
		bv, _ := b.(int)
		return av < bv
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	}
	return false
}

// apply sorts and bounds an already-filtered result set. Insertion order
// is preserved when no ordering was requested, which keeps memory search
// results stable across runs.
func apply[T any](q *memQuery, rows []T, get func(T) getter) []T {
	if q.orderField != "" {
		field := q.orderField
		desc := q.orderDesc
		sort.SliceStable(rows, func(i, j int) bool {
			a := get(rows[i])(field)
			b := get(rows[j])(field)
			if desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	if q.limit >= 0 && len(rows) > q.limit {
		rows = rows[:q.limit]
	}
	return rows
}
