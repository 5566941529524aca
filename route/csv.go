package route

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadCSV parses waypoint rows of the form x,y,z,yaw[,velocity]. Blank lines
// and lines starting with '#' are skipped. Rows without a velocity column get
// defaultVelocity. Yaw is accepted for compatibility with existing waypoint
// files and ignored.
func ReadCSV(reader io.Reader, defaultVelocity float64) (Route, error) {
	cr := csv.NewReader(reader)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	r := Route{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not read waypoint csv")
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < 3 {
			line, _ := cr.FieldPos(0)
			return nil, errors.Errorf("waypoint csv line %d: expected at least 3 columns, got %d", line, len(record))
		}

		values := make([]float64, len(record))
		for i, field := range record {
			values[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err == nil && !Finite(values[i]) {
				err = ErrNonFinite
			}
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, errors.Wrapf(err, "waypoint csv line %d column %d", line, i+1)
			}
		}

		p := Point{X: values[0], Y: values[1], Z: values[2], Velocity: defaultVelocity}
		if len(values) >= 5 {
			p.Velocity = values[4]
		}
		r = append(r, p)
	}
	return r, nil
}

func LoadCSV(path string, defaultVelocity float64) (Route, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open waypoint file")
	}
	defer file.Close()
	return ReadCSV(file, defaultVelocity)
}

// WriteCSV writes r in the format ReadCSV accepts. Yaw is derived from the
// direction to the following point.
func WriteCSV(w io.Writer, r Route) error {
	cw := csv.NewWriter(w)
	for i, p := range r {
		yaw := 0.0
		if i+1 < len(r) {
			yaw = heading(p, r[i+1])
		} else if i > 0 {
			yaw = heading(r[i-1], p)
		}
		err := cw.Write([]string{
			formatFloat(p.X),
			formatFloat(p.Y),
			formatFloat(p.Z),
			formatFloat(yaw),
			formatFloat(p.Velocity),
		})
		if err != nil {
			return errors.Wrap(err, "could not write waypoint csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "could not flush waypoint csv")
}

// heading is the yaw from a to b, counter clockwise from +x.
func heading(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
