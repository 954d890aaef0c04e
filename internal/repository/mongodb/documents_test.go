package mongodb

import (
	"testing"

	"catalog-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseID(oid.Hex())
	assert.NoError(t, err)
	assert.Equal(t, oid, got)

	got, err = parseID("")
	assert.NoError(t, err)
	assert.Equal(t, primitive.NilObjectID, got)

	_, err = parseID("not-hex")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}
