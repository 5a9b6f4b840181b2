package io

import (
	"reflect"
	"strings"
)

//TagSqlx defines default annotation tag name
const TagSqlx = "sqlx"

//Tag represent field tag
type Tag struct {
	Column      string
	Key         bool
	ExplicitKey bool
	Computed    bool
	Transient   bool
}

//ParseTag parses tag, supported forms:
//
//	`sqlx:"-"`                         field ignored by all generated statements
//	`sqlx:"name=Id,autoincrement"`     database generated identity (key and computed)
//	`sqlx:"CustomerId,explicitKey"`    caller supplied identity
//	`sqlx:"Version,computed"`          read only, never inserted nor updated
func ParseTag(tagString string) *Tag {
	tag := &Tag{}
	if strings.TrimSpace(tagString) == "-" {
		tag.Transient = true
		return tag
	}
	elements := strings.Split(tagString, ",")
	for i, element := range elements {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}
		nv := strings.SplitN(element, "=", 2)
		switch len(nv) {
		case 2:
			value := strings.TrimSpace(nv[1])
			switch strings.ToLower(strings.TrimSpace(nv[0])) {
			case "name":
				tag.Column = value
			case "key", "primarykey":
				tag.Key = tag.Key || isTrue(value)
			case "explicitkey":
				tag.ExplicitKey = tag.ExplicitKey || isTrue(value)
			case "computed":
				tag.Computed = tag.Computed || isTrue(value)
			case "autoincrement", "identity":
				if isTrue(value) {
					tag.Key = true
					tag.Computed = true
				}
			case "generator":
				if strings.EqualFold(value, "autoincrement") {
					tag.Key = true
					tag.Computed = true
				}
			}
		case 1:
			switch strings.ToLower(element) {
			case "key", "primarykey":
				tag.Key = true
			case "explicitkey":
				tag.ExplicitKey = true
			case "computed":
				tag.Computed = true
			case "autoincrement", "identity":
				tag.Key = true
				tag.Computed = true
			default:
				if i == 0 {
					tag.Column = element
				}
			}
		}
	}
	return tag
}

//ColumnName returns column name for the field
func (t *Tag) ColumnName(field reflect.StructField) string {
	if t.Column != "" {
		return t.Column
	}
	return field.Name
}

func isTrue(value string) bool {
	return value == "" || strings.EqualFold(value, "true")
}
