// Package domain defines the core domain models for the venue timeline.
package domain

// Canonical field names produced by the field mapper and read by the normalizer.
// They double as the JSON keys of the snapshot format.
const (
	FieldID           = "id"
	FieldMatchcode    = "matchcode"
	FieldName         = "name"
	FieldKind         = "kind"
	FieldStart        = "start"
	FieldSetup        = "setup"
	FieldEventStart   = "eventStart"
	FieldEventEnd     = "eventEnd"
	FieldDismantle    = "dismantle"
	FieldEnd          = "end"
	FieldHalls        = "halls"
	FieldDependencies = "dependencies"
)

// Source column headers of the venue management export.
const (
	ColumnName       = "Name"
	ColumnMatchcode  = "MATCHCODE"
	ColumnKind       = "Veranstaltungsart"
	ColumnStart      = "Beginn Mantelzeit"
	ColumnSetup      = "Beginn externer Aufbau"
	ColumnEventStart = "Veranstaltungsbeginn"
	ColumnEventEnd   = "Veranstaltungsende"
	ColumnDismantle  = "Ende externer Abbau"
	ColumnEnd        = "Ende Mantelzeit"
	ColumnHalls      = "Hallen"
)
