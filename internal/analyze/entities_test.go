package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"steergen/internal/steering"
)

const sampleTypes = `
export interface Order {
  id: string
  total: number
  note?: string
  readonly createdAt: Date
  items: {
    sku: string
  }[]
}

interface Internal {
  flag: boolean
}

export type OrderStatus = 'pending' | 'shipped' | 'delivered'

export type Mixed = 'a' | 42

export type Alias = string

export enum UserRole {
  Admin = "admin",
  Member = "member",
}

export enum Direction {
  Up,
  Down,
}
`

func TestExtract_Interfaces(t *testing.T) {
	extractor := newEntityExtractor()
	entities, _, err := extractor.extract(context.Background(), []byte(sampleTypes))
	assert.NoError(t, err)
	assert.Len(t, entities, 2)

	order := entities[0]
	assert.Equal(t, "Order", order.Name)
	assert.Len(t, order.Fields, 5)

	assert.Equal(t, steering.Field{Name: "id", Type: "string"}, order.Fields[0])
	assert.Equal(t, steering.Field{Name: "total", Type: "number"}, order.Fields[1])
	assert.Equal(t, steering.Field{Name: "note", Type: "string", Optional: true}, order.Fields[2])
	assert.Equal(t, "createdAt", order.Fields[3].Name)
	assert.Equal(t, "Date", order.Fields[3].Type)
	assert.False(t, order.Fields[3].Optional)
	assert.Equal(t, "items", order.Fields[4].Name)

	// Non-exported interfaces still count as entities.
	assert.Equal(t, "Internal", entities[1].Name)
}

func TestExtract_StatusEnums(t *testing.T) {
	extractor := newEntityExtractor()
	_, enums, err := extractor.extract(context.Background(), []byte(sampleTypes))
	assert.NoError(t, err)

	names := make([]string, 0, len(enums))
	for _, e := range enums {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"OrderStatus", "UserRole", "Direction"}, names)

	assert.Equal(t, []string{"pending", "shipped", "delivered"}, enums[0].Values)
	assert.Equal(t, []string{"admin", "member"}, enums[1].Values)
	assert.Equal(t, []string{"Up", "Down"}, enums[2].Values)
}

func TestExtract_RejectsNonStatusUnions(t *testing.T) {
	extractor := newEntityExtractor()

	// Mixed literal kinds disqualify the union even with a status suffix.
	_, enums, err := extractor.extract(context.Background(), []byte(`export type SizeType = 'sm' | 2`))
	assert.NoError(t, err)
	assert.Empty(t, enums)

	// A string union without a workflow suffix is not a status enum.
	_, enums, err = extractor.extract(context.Background(), []byte(`export type Color = 'red' | 'blue'`))
	assert.NoError(t, err)
	assert.Empty(t, enums)
}

func TestExtractEntities_FromFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib/types.ts", "export interface User { id: string }\nexport type UserStatus = 'active' | 'banned'\n")

	budget := 100
	entities, enums, err := ExtractEntities(context.Background(), root, steering.FrameworkReact, &budget)
	assert.NoError(t, err)
	assert.Len(t, entities, 1)
	assert.Equal(t, "User", entities[0].Name)
	assert.Len(t, enums, 1)
	assert.Equal(t, "UserStatus", enums[0].Name)
}

func TestExtractEntities_LaravelModels(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/Models/User.php", "<?php class User {}")
	writeFile(t, root, "app/Models/Invoice.php", "<?php class Invoice {}")

	budget := 100
	entities, _, err := ExtractEntities(context.Background(), root, steering.FrameworkLaravel, &budget)
	assert.NoError(t, err)

	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Invoice", "User"}, names)
	assert.Equal(t, "Eloquent model", entities[0].Description)
}

func TestExtractEntities_EmptyRoot(t *testing.T) {
	budget := 100
	entities, enums, err := ExtractEntities(context.Background(), t.TempDir(), steering.FrameworkReact, &budget)
	assert.NoError(t, err)
	assert.Empty(t, entities)
	assert.Empty(t, enums)
}
