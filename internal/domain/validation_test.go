package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestProduct_ValidateValid(t *testing.T) {
	p := NewProduct("Mesa", 100, &Category{Name: "Muebles"})
	assert.Empty(t, p.Validate())
}

func TestProduct_ValidateZeroPriceIsPresent(t *testing.T) {
	p := NewProduct("Regalo", 0, &Category{Name: "Muebles"})
	assert.Empty(t, p.Validate())
}

func TestProduct_ValidateMissingFields(t *testing.T) {
	errs := (&Product{Name: ""}).Validate()

	assert.ElementsMatch(t, []FieldError{
		{Field: "nombre", Message: "must not be blank"},
		{Field: "precio", Message: "must not be null"},
		{Field: "categoria", Message: "must not be null"},
	}, errs)
}

func TestProperty_BlankNamesAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("whitespace-only names fail with nombre", prop.ForAll(
		func(n int) bool {
			name := ""
			for i := 0; i < n; i++ {
				name += []string{" ", "\t", "\n"}[i%3]
			}
			errs := NewProduct(name, 1, &Category{Name: "Deporte"}).Validate()
			return len(errs) == 1 && errs[0].Field == "nombre"
		},
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCategory_Validate(t *testing.T) {
	assert.Empty(t, (&Category{Name: "Deporte"}).Validate())
	assert.Equal(t, []FieldError{{Field: "nombre", Message: "must not be blank"}}, (&Category{Name: "  "}).Validate())
}

func TestEmbeddedCategory(t *testing.T) {
	var nilCategory *Category
	assert.Nil(t, nilCategory.EmbeddedCategory())

	c := &Category{ID: "1", Name: "Deporte"}
	cp := c.EmbeddedCategory()
	cp.Name = "Otro"
	assert.Equal(t, "Deporte", c.Name)
}
