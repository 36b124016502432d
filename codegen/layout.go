package codegen

import (
	"fmt"
	"nullgen/llvm"
	"strings"
)

// FieldLayout is the placement of one struct field in memory.
type FieldLayout struct {
	Type   string
	Offset uint64
	Size   uint64
	Align  uint64
}

// StructLayout is the memory layout of a named struct on a target.
type StructLayout struct {
	Name   string
	Fields []FieldLayout
	Size   uint64
	Align  uint64
}

// String formats the layout as a table, one field per line.
func (sl StructLayout) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "struct %s: size %d, align %d\n", sl.Name, sl.Size, sl.Align)

	for i, field := range sl.Fields {
		fmt.Fprintf(&sb, "  %d  %-8s offset %-3d size %-3d align %d\n", i, field.Type, field.Offset, field.Size, field.Align)
	}

	return sb.String()
}

// LayoutMismatchError reports a struct whose layout as computed by LLVM does
// not match the layout a C compiler would give it.
type LayoutMismatchError struct {
	Name string
	Want StructLayout
	Got  StructLayout
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("layout of struct `%s` does not match the C ABI:\nwant %sgot  %s", e.Name, e.Want, e.Got)
}

// Layout returns the layout of the named struct called name as computed by
// the target data td.
func (r *Registry) Layout(name string, td llvm.TargetData) (StructLayout, error) {
	entry, ok := r.structs[name]
	if !ok {
		return StructLayout{}, fmt.Errorf("unknown struct `%s`", name)
	}

	if entry.fields == nil {
		return StructLayout{}, fmt.Errorf("struct `%s` is opaque", name)
	}

	sl := StructLayout{
		Name:  name,
		Size:  td.ABISizeOf(entry.typ),
		Align: td.ABIAlignOf(entry.typ),
	}

	for i, field := range entry.fields {
		sl.Fields = append(sl.Fields, FieldLayout{
			Type:   field.String(),
			Offset: td.OffsetOfField(entry.typ, i),
			Size:   td.ABISizeOf(field),
			Align:  td.ABIAlignOf(field),
		})
	}

	return sl, nil
}

// CLayout lays out fields with the C rules: each field starts at the next
// multiple of its alignment and the total size is rounded up to the largest
// field alignment.  Only the Type, Size and Align of the fields are used.
func CLayout(name string, fields []FieldLayout) StructLayout {
	sl := StructLayout{Name: name, Align: 1}

	var size uint64
	for _, field := range fields {
		align := field.Align
		if align == 0 {
			align = 1
		}

		size = roundUp(size, align)
		sl.Fields = append(sl.Fields, FieldLayout{
			Type:   field.Type,
			Offset: size,
			Size:   field.Size,
			Align:  align,
		})

		size += field.Size
		sl.Align = max(sl.Align, align)
	}

	sl.Size = roundUp(size, sl.Align)
	return sl
}

// roundUp rounds n up to the next multiple of align.
func roundUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}

	r := n % align
	if r == 0 {
		return n
	}

	return n + (align - r)
}

// CheckLayout returns the layout of the struct called name and an error if it
// differs from its C layout on the target described by td.
func (r *Registry) CheckLayout(name string, td llvm.TargetData) (StructLayout, error) {
	got, err := r.Layout(name, td)
	if err != nil {
		return got, err
	}

	want := CLayout(name, got.Fields)
	if want.Size != got.Size || want.Align != got.Align {
		return got, &LayoutMismatchError{Name: name, Want: want, Got: got}
	}

	for i := range want.Fields {
		if want.Fields[i].Offset != got.Fields[i].Offset {
			return got, &LayoutMismatchError{Name: name, Want: want, Got: got}
		}
	}

	return got, nil
}
