package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/saturnines/lakehouse-sdk/pkg/transform"
)

// Output writes records as JSON, one object or an array of them.
type Output interface {
	Emit(interface{}) error
	Done()
}

type output struct {
	w           io.Writer
	projection  *transform.Projection
	isSingle    bool
	hasPrevious bool
}

func (o *output) Emit(v interface{}) error {
	record, err := transform.ToMap(v)
	if err != nil {
		return err
	}
	record, err = o.projection.Apply(record)
	if err != nil {
		return err
	}

	indent := ""
	if !o.isSingle {
		indent = "  "
		if !o.hasPrevious {
			fmt.Fprint(o.w, "[\n")
		} else {
			fmt.Fprint(o.w, ",\n")
		}
	}

	formatted, err := json.MarshalIndent(record, indent, "  ")
	if err != nil {
		return err
	}
	fmt.Fprint(o.w, indent+string(formatted))
	o.hasPrevious = true
	return nil
}

func (o *output) Done() {
	switch {
	case o.isSingle:
		fmt.Fprintln(o.w)
	case o.hasPrevious:
		fmt.Fprint(o.w, "\n]\n")
	default:
		fmt.Fprintln(o.w, "[]")
	}
}

func OutputSingle(w io.Writer, p *transform.Projection) Output {
	return &output{w: w, projection: p, isSingle: true}
}

func OutputMultiple(w io.Writer, p *transform.Projection) Output {
	return &output{w: w, projection: p}
}
