package models

import (
	"reflect"
	"strings"
	"time"
)

// VertexLine represents a row of the 'GIS_VertexLine' table: one road segment
// between two linear-reference measures.
type VertexLine struct {
	ObjectID         int64      `gorm:"column:Object_ID;primaryKey"`
	GISTableID       *int64     `gorm:"column:GISTable_ID"`
	RoadName         string     `gorm:"column:ROADNAME;type:varchar"`
	MeasureFromKM    float64    `gorm:"column:MeasureFromKM"`
	MeasureToKM      float64    `gorm:"column:MeasureToKM"`
	MeasureFromMeter *float64   `gorm:"column:MeasureFromMeter"`
	MeasureToMeter   *float64   `gorm:"column:MeasureToMeter"`
	FromEasting      *float64   `gorm:"column:FromEasting"`
	FromNorthing     *float64   `gorm:"column:FromNorthing"`
	ToEasting        *float64   `gorm:"column:ToEasting"`
	ToNorthing       *float64   `gorm:"column:ToNorthing"`
	DateExported     *time.Time `gorm:"column:DateExported"`
	ExportedBy       string     `gorm:"column:ExportedBy"`
	FMEWorkSpaceUsed string     `gorm:"column:FMEWorkSpaceUsed"`
	Geom             string     `gorm:"column:GEOM;type:geometry" vertex:"geometry"`
}

// TableName overrides the table name for VertexLine.
func (VertexLine) TableName() string {
	return "GIS_VertexLine"
}

// VertexPoint represents a row of the 'GIS_VertexPoint' table: one surveyed
// vertex at a single linear-reference measure.
type VertexPoint struct {
	ObjectID          int64      `gorm:"column:Object_ID;primaryKey"`
	GISRoadSegmentID  *int64     `gorm:"column:GIS_RoadSegment_ID"`
	RoadName          string     `gorm:"column:ROADNAME;type:varchar"`
	KMFrom            *float64   `gorm:"column:KM_FROM"`
	KMTo              *float64   `gorm:"column:KM_TO"`
	RoadnameTravelDir string     `gorm:"column:RoadnameTravelDir"`
	Routes            string     `gorm:"column:Routes"`
	Hwy               string     `gorm:"column:Hwy"`
	CS                string     `gorm:"column:CS"`
	RoadType          string     `gorm:"column:RoadType"`
	MainRoads         string     `gorm:"column:MainRoads"`
	TravelDir         string     `gorm:"column:TRAVELDIR"`
	Measure           float64    `gorm:"column:Measure"`
	MeasureMeters     *float64   `gorm:"column:MeasureMeters"`
	ElementIndex      *int64     `gorm:"column:_element_index"`
	VertexNumber      *int64     `gorm:"column:vertex_number"`
	Northing          *float64   `gorm:"column:Northing"`
	Easting           *float64   `gorm:"column:Easting"`
	DateCreated       *time.Time `gorm:"column:DateCreated"`
}

// TableName overrides the table name for VertexPoint.
func (VertexPoint) TableName() string {
	return "GIS_VertexPoint"
}

// Field describes one mapped column of a model.
type Field struct {
	Column   string
	Type     string
	Geometry bool
}

// Fields lists the mapped columns of a model in declaration order.
func Fields(model any) []Field {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("gorm")
		col := parseGormSetting(tag, "column")
		if col == "" {
			continue
		}
		fields = append(fields, Field{
			Column:   col,
			Type:     parseGormSetting(tag, "type"),
			Geometry: f.Tag.Get("vertex") == "geometry",
		})
	}
	return fields
}

// LineColumns returns the attribute columns of GIS_VertexLine, without geometry.
func LineColumns() []string {
	return attributeColumns(VertexLine{})
}

// LineGeometry returns the geometry column of GIS_VertexLine.
func LineGeometry() string {
	for _, f := range Fields(VertexLine{}) {
		if f.Geometry {
			return f.Column
		}
	}
	return ""
}

// PointColumns returns the attribute columns of GIS_VertexPoint.
func PointColumns() []string {
	return attributeColumns(VertexPoint{})
}

func attributeColumns(model any) []string {
	var cols []string
	for _, f := range Fields(model) {
		if !f.Geometry {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// parseGormSetting returns the value of a "key:value" entry of a gorm tag.
func parseGormSetting(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key+":") {
			return strings.TrimPrefix(p, key+":")
		}
	}
	return ""
}
