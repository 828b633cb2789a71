package ussdpush

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kevin07696/ussd-push-service/internal/domain"
)

// ParsedEnvelope is an inbound envelope reduced to flat sections
// Every section is non-nil; an absent section is an empty map
type ParsedEnvelope struct {
	Header   map[string]interface{}
	Fault    map[string]interface{}
	Event    map[string]interface{}
	Request  map[string]interface{}
	Response map[string]interface{}
}

// Sections returns the raw sections exposed on results for diagnostics
func (e *ParsedEnvelope) Sections() domain.Sections {
	return domain.Sections{
		Header:   e.Header,
		Event:    e.Event,
		Request:  e.Request,
		Response: e.Response,
	}
}

// Candidate paths per section, lower-case and prefix-free, first match wins
var (
	headerPaths = [][]string{
		{"envelope", "header", "eventresponse"},
		{"envelope", "header"},
	}
	headerEventIDPaths = [][]string{
		{"eventid"},
		{"eventinfo", "eventid"},
		{"event", "id"},
	}
	faultPaths = [][]string{
		{"envelope", "body", "fault"},
	}
	eventPaths = [][]string{
		{"envelope", "body", "getgenericresultresponse", "soapapiresult", "eventinfo"},
		{"envelope", "body", "getgenericresult", "eventinfo"},
	}
	requestPaths = [][]string{
		{"envelope", "body", "getgenericresult", "request"},
		{"envelope", "body", "getgenericresultresponse", "soapapiresult", "request"},
	}
	responsePaths = [][]string{
		{"envelope", "body", "getgenericresultresponse", "soapapiresult", "response"},
	}
)

// Parse reduces a gateway envelope (response or webhook callback) into flat sections
func Parse(raw string) (*ParsedEnvelope, error) {
	root, err := decodeTree(raw)
	if err != nil {
		return nil, domain.WrapCodecError(domain.MsgMalformedEnvelope, err)
	}
	if root.name != "envelope" {
		return nil, domain.WrapCodecError(domain.MsgMalformedEnvelope,
			fmt.Errorf("unexpected root element %q", root.local))
	}

	// Paths are rooted at the document node so "envelope" is the first step
	doc := &node{children: []*node{root}}

	env := &ParsedEnvelope{
		Header:   flattenLeaves(doc.find(headerPaths)),
		Fault:    flattenLeaves(doc.find(faultPaths)),
		Event:    flattenLeaves(doc.find(eventPaths)),
		Request:  reduceDataItems(doc.find(requestPaths)),
		Response: reduceDataItems(doc.find(responsePaths)),
	}

	if header := doc.find(headerPaths); header != nil {
		if id := header.find(headerEventIDPaths); id != nil {
			delete(env.Header, "eventID")
			env.Header["eventId"] = id.text
		}
	}

	return env, nil
}

// node is a namespace-stripped XML element
type node struct {
	name     string // lower-cased local name, used for path lookups
	local    string // local name as sent, used for output keys
	text     string
	children []*node
}

// child returns the first direct child with the given lower-case name
func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// path walks a sequence of lower-case names
func (n *node) path(steps []string) *node {
	cur := n
	for _, step := range steps {
		if cur = cur.child(step); cur == nil {
			return nil
		}
	}
	return cur
}

// find evaluates candidate paths in order and returns the first match
func (n *node) find(candidates [][]string) *node {
	if n == nil {
		return nil
	}
	for _, steps := range candidates {
		if found := n.path(steps); found != nil {
			return found
		}
	}
	return nil
}

func decodeTree(raw string) (*node, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))

	var root *node
	var stack []*node

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			local := stripPrefix(t.Name.Local)
			n := &node{name: strings.ToLower(local), local: local}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text = strings.TrimSpace(top.text)
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}

func stripPrefix(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// flattenLeaves maps each childless element to its text under a camel-cased key
func flattenLeaves(n *node) map[string]interface{} {
	out := make(map[string]interface{})
	if n == nil {
		return out
	}
	for _, c := range n.children {
		if len(c.children) > 0 {
			continue
		}
		out[camelCase(c.local)] = c.text
	}
	return out
}

// reduceDataItems folds a dataItem list into a flat map, last write wins
func reduceDataItems(n *node) map[string]interface{} {
	out := make(map[string]interface{})
	if n == nil {
		return out
	}
	for _, c := range n.children {
		if c.name != "dataitem" {
			continue
		}
		item := toDataItem(c)
		key := camelCase(item.Name)
		if key == "" {
			continue
		}
		out[key] = DecodeItem(item)
	}
	return out
}

func toDataItem(n *node) DataItem {
	item := DataItem{}
	if name := n.child("name"); name != nil {
		item.Name = name.text
	}
	if typ := n.child("type"); typ != nil {
		item.Type = typ.text
	}
	if value := n.child("value"); value != nil {
		text := value.text
		item.Value = &text
	}
	return item
}
