// Package data implements the applicant data document: a JSON-shaped tree of
// answers addressed by path.Path.
//
// Reads never fail. A missing path, or a value that cannot be coerced to the
// requested type, reads as absent (ok == false); question views treat absent
// as "not answered yet".
//
// A document has no internal locking. Concurrent reads of a document nobody
// is writing are safe; anything else needs external synchronization.
package data

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"uat/internal/l10n"
	"uat/internal/path"
)

// DateLayout is the stored form of dates.
const DateLayout = "2006-01-02"

var preferredLocalePath = path.Create("applicant.preferred_locale")

// ApplicantData is the answer document of one applicant.
type ApplicantData struct {
	root *node
}

// New returns an empty document.
func New() *ApplicantData {
	return &ApplicantData{root: objectNode()}
}

func (d *ApplicantData) PutString(p path.Path, value string) {
	d.put(p, stringNode(value))
}

func (d *ApplicantData) PutLong(p path.Path, value int64) {
	d.put(p, numberNode(strconv.FormatInt(value, 10)))
}

// PutDouble stores value. NaN and infinities have no serialized form and are
// ignored.
func (d *ApplicantData) PutDouble(p path.Path, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	d.put(p, numberNode(strconv.FormatFloat(value, 'f', -1, 64)))
}

func (d *ApplicantData) PutBool(p path.Path, value bool) {
	d.put(p, boolNode(value))
}

// PutDate stores the calendar date of value as YYYY-MM-DD.
func (d *ApplicantData) PutDate(p path.Path, value time.Time) {
	d.put(p, stringNode(value.Format(DateLayout)))
}

// PutLongList stores values as an array, replacing any previous value.
func (d *ApplicantData) PutLongList(p path.Path, values []int64) {
	items := make([]*node, 0, len(values))
	for _, v := range values {
		items = append(items, numberNode(strconv.FormatInt(v, 10)))
	}
	d.put(p, arrayNode(items))
}

// PutNull stores an explicit null, which reads as absent everywhere but
// keeps the key in the serialized document.
func (d *ApplicantData) PutNull(p path.Path) {
	d.put(p, nullNode())
}

// Remove deletes the value at p, if any.
func (d *ApplicantData) Remove(p path.Path) {
	if p.IsEmpty() {
		return
	}
	parent := d.lookup(p.Parent())
	if parent == nil || parent.kind != kindObject {
		return
	}
	delete(parent.fields, p.Last())
}

// put writes n at p, creating intermediate objects. A non-object value in the
// way is replaced. Writes to the root path are ignored.
func (d *ApplicantData) put(p path.Path, n *node) {
	segments := p.Segments()
	if len(segments) == 0 {
		return
	}
	cur := d.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := cur.fields[seg]
		if !ok || child.kind != kindObject {
			child = objectNode()
			cur.fields[seg] = child
		}
		cur = child
	}
	cur.fields[segments[len(segments)-1]] = n
}

func (d *ApplicantData) lookup(p path.Path) *node {
	cur := d.root
	for _, seg := range p.Segments() {
		if cur.kind != kindObject {
			return nil
		}
		next, ok := cur.fields[seg]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// HasPath reports whether a non-null value is stored at p.
func (d *ApplicantData) HasPath(p path.Path) bool {
	n := d.lookup(p)
	return n != nil && n.kind != kindNull
}

func (d *ApplicantData) ReadString(p path.Path) (string, bool) {
	n := d.lookup(p)
	if n == nil || n.kind != kindString {
		return "", false
	}
	return n.text, true
}

// ReadLong accepts integral numbers and strings holding a base-10 integer.
func (d *ApplicantData) ReadLong(p path.Path) (int64, bool) {
	n := d.lookup(p)
	if n == nil {
		return 0, false
	}
	return coerceLong(n)
}

// ReadDouble accepts finite numbers and numeric strings.
func (d *ApplicantData) ReadDouble(p path.Path) (float64, bool) {
	n := d.lookup(p)
	if n == nil || (n.kind != kindNumber && n.kind != kindString) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(n.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (d *ApplicantData) ReadBool(p path.Path) (bool, bool) {
	n := d.lookup(p)
	if n == nil || n.kind != kindBool {
		return false, false
	}
	return n.boolean, true
}

// ReadDate accepts a YYYY-MM-DD string or integer epoch milliseconds. The
// result is in UTC.
func (d *ApplicantData) ReadDate(p path.Path) (time.Time, bool) {
	n := d.lookup(p)
	if n == nil {
		return time.Time{}, false
	}
	if n.kind == kindString {
		t, err := time.Parse(DateLayout, strings.TrimSpace(n.text))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if n.kind == kindNumber {
		if ms, ok := coerceLong(n); ok {
			return time.UnixMilli(ms).UTC(), true
		}
	}
	return time.Time{}, false
}

// ReadLongList reads an array of integers. Elements that are not integers are
// skipped; a single integer reads as a one-element list.
func (d *ApplicantData) ReadLongList(p path.Path) ([]int64, bool) {
	n := d.lookup(p)
	if n == nil {
		return nil, false
	}
	if n.kind != kindArray {
		v, ok := coerceLong(n)
		if !ok {
			return nil, false
		}
		return []int64{v}, true
	}
	out := make([]int64, 0, len(n.items))
	for _, item := range n.items {
		if v, ok := coerceLong(item); ok {
			out = append(out, v)
		}
	}
	return out, true
}

func coerceLong(n *node) (int64, bool) {
	switch n.kind {
	case kindString:
		v, err := strconv.ParseInt(strings.TrimSpace(n.text), 10, 64)
		return v, err == nil
	case kindNumber:
		if v, err := strconv.ParseInt(n.text, 10, 64); err == nil {
			return v, true
		}
		f, err := strconv.ParseFloat(n.text, 64)
		if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// PreferredLocale is the locale the applicant reads questions in. It is
// l10n.DefaultLocale until set.
func (d *ApplicantData) PreferredLocale() language.Tag {
	raw, ok := d.ReadString(preferredLocalePath)
	if !ok {
		return l10n.DefaultLocale
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return l10n.DefaultLocale
	}
	return tag
}

func (d *ApplicantData) SetPreferredLocale(locale language.Tag) {
	d.PutString(preferredLocalePath, locale.String())
}

// LeafPaths lists the paths of every non-object value, sorted.
func (d *ApplicantData) LeafPaths() []path.Path {
	var out []path.Path
	var walk func(p path.Path, n *node)
	walk = func(p path.Path, n *node) {
		if n.kind != kindObject {
			out = append(out, p)
			return
		}
		for key, child := range n.fields {
			walk(p.Join(key), child)
		}
	}
	for key, child := range d.root.fields {
		walk(path.Create(key), child)
	}
	slices.SortFunc(out, path.Path.Compare)
	return out
}

// Equal compares documents by content.
func (d *ApplicantData) Equal(other *ApplicantData) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.root.equal(other.root)
}

// Clone returns a deep copy.
func (d *ApplicantData) Clone() *ApplicantData {
	return &ApplicantData{root: d.root.clone()}
}
