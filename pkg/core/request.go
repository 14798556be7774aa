package core

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Request carries everything needed to sign and send one REST call.
// Path is the signed resource; Query is appended to the URL but never signed.
type Request struct {
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Query     string            `json:"query,omitempty"`
	Body      []byte            `json:"body,omitempty"`
	Timestamp string            `json:"timestamp"`
	Headers   map[string]string `json:"headers,omitempty"`
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Headers: make(map[string]string),
	}
}

// SetQuery sets the raw, already encoded query string (without the leading "?").
func (r *Request) SetQuery(query string) *Request {
	r.Query = query
	return r
}

// SetBody sets the serialized body. These exact bytes are signed and sent.
func (r *Request) SetBody(body []byte) *Request {
	r.Body = body
	return r
}

func (r *Request) SetTimestamp(ts string) *Request {
	r.Timestamp = ts
	return r
}

func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// URL joins root, the resource path, and the query string.
// The path is used verbatim; callers escape path segments themselves.
func (r *Request) URL(root string) string {
	u := strings.TrimRight(root, "/") + r.Path
	if r.Query != "" {
		u += "?" + r.Query
	}
	return u
}

// Params builds a query string in insertion order, skipping empty values.
type Params struct {
	keys   []string
	values url.Values
}

func NewParams() *Params {
	return &Params{values: make(url.Values)}
}

// Set records key=value unless value is empty.
func (p *Params) Set(key, value string) *Params {
	if value == "" {
		return p
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values.Add(key, value)
	return p
}

// SetInt records key=n unless n is zero.
func (p *Params) SetInt(key string, n int) *Params {
	if n == 0 {
		return p
	}
	return p.Set(key, strconv.Itoa(n))
}

// SetAll records one key=value pair per element, e.g. product_ids=A&product_ids=B.
func (p *Params) SetAll(key string, values []string) *Params {
	for _, v := range values {
		p.Set(key, v)
	}
	return p
}

// Encode renders the query without a leading "?". An empty Params encodes to "".
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, k := range p.keys {
		for _, v := range p.values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// IsPost reports whether the request carries a JSON body.
func (r *Request) IsPost() bool {
	return r.Method == http.MethodPost
}
