package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"railshift/models"
)

func TestPostgresWhere(t *testing.T) {
	s := NewPostgresStore(nil, wagonTable)

	where, args := s.where(models.ListQuery{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = s.where(models.ListQuery{
		Search:  "3180",
		Filters: map[string]string{"type": "Eanos", "status": "EMPTY", "remarks": "ignored", "rail": ""},
	})
	assert.Equal(t, " WHERE (wagon_number ILIKE $1 OR type ILIKE $1) AND status = $2 AND type = $3", where)
	assert.Equal(t, []any{"%3180%", "EMPTY", "Eanos"}, args)
}

func TestMongoFilter(t *testing.T) {
	s := NewMongoStore(nil, wagonTable)

	f := s.filter(models.ListQuery{
		Search:  "a.b",
		Filters: map[string]string{"current_location_id": "12", "status": "EMPTY", "remarks": "x"},
	})
	assert.Equal(t, int64(12), f["current_location_id"])
	assert.Equal(t, "EMPTY", f["status"])
	assert.NotContains(t, f, "remarks")
	assert.Equal(t, bson.A{
		bson.M{"wagon_number": bson.M{"$regex": `a\.b`, "$options": "i"}},
		bson.M{"type": bson.M{"$regex": `a\.b`, "$options": "i"}},
	}, f["$or"])
}
