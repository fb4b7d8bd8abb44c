package repo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storekit/storefront-api/internal/usecase"
)

// Collection names. Together with the counters collection these are the
// whole persisted footprint.
const (
	colUsers     = "users"
	colCustomers = "customers"
	colProducts  = "products"
	colOrders    = "orders"
	colCounters  = "counters"
)

const maxPageSize = 100

// pageWindow clamps client-supplied paging into skip/limit values.
func pageWindow(page, limit, fallback int64) (skip, lim int64) {
	if limit <= 0 {
		limit = fallback
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}

func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ciRegex builds a case-insensitive substring matcher with the user's
// input escaped, so search terms cannot inject regex syntax.
func ciRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func sortDir(asc bool) int {
	if asc {
		return 1
	}
	return -1
}

// mapErr translates driver errors into the usecase taxonomy.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return usecase.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return usecase.ErrDuplicate
	default:
		return err
	}
}
