package common

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 7.0 ", 7, true},
		{"3.25", 3.25, true},
		{"-12", -12, true},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{[]byte("9.5"), 9.5, true},
		{int64(11), 11, true},
		{float32(0.5), 0.5, true},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseNumber(%#v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCellString(t *testing.T) {
	if got := CellString(2.5); got != "2.5" {
		t.Errorf("CellString(2.5) = %q", got)
	}
	if got := CellString([]byte("x")); got != "x" {
		t.Errorf("CellString(bytes) = %q", got)
	}
	if got := CellString(nil); got != "" {
		t.Errorf("CellString(nil) = %q", got)
	}
}

func TestChartDataHelpers(t *testing.T) {
	d := &ChartData{Series: []Series{{Data: []float64{1, 2}}, {Data: []float64{1, 2, 3}}}}
	if d.MaxPoints() != 3 {
		t.Errorf("MaxPoints = %d", d.MaxPoints())
	}
	if d.Empty() {
		t.Error("data with series should not be empty")
	}
	f := FailedChartData("denied")
	if !f.Fail || f.FailMessage != "denied" || !f.Empty() {
		t.Errorf("FailedChartData = %#v", f)
	}
}

func TestDatabaseConnectionComplete(t *testing.T) {
	c := DatabaseConnection{ConName: "prod", Host: "h", DBName: "d", UserName: "u", Pass: "p"}
	if !c.Complete() {
		t.Error("full connection should be complete")
	}
	c.UserName = ""
	if c.Complete() {
		t.Error("connection without user should be incomplete")
	}
}

func TestConnectionsScan(t *testing.T) {
	var c Connections
	if err := c.Scan(`{"prod":{"con_name":"prod","host":"h"}}`); err != nil {
		t.Fatal(err)
	}
	if c["prod"].Host != "h" {
		t.Errorf("scanned %#v", c)
	}
	v, err := c.Value()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(string); !ok {
		t.Errorf("Value type %T", v)
	}
	if err := c.Scan(12); err == nil {
		t.Error("expected error for unsupported value")
	}
}
