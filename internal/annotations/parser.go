package annotations

import (
	"regexp"
	"strings"
)

// tagLineRegex matches a line that opens a tag, e.g. "@paramPath id - ..."
var tagLineRegex = regexp.MustCompile(`^@([a-zA-Z][a-zA-Z0-9_]*)(?:\s+(.*))?$`)

// statusRegex matches a 3-digit HTTP status code
var statusRegex = regexp.MustCompile(`^[1-5][0-9]{2}$`)

// rawTag is a tag name with its payload lines joined
type rawTag struct {
	Name    string
	Payload string
	Line    int // 1-based line of the tag within the block
}

// Parser turns documentation comment blocks into OperationAnnotations
type Parser struct {
	payload *ParticipleParser
}

// NewParser creates a new comment parser
func NewParser() *Parser {
	return &Parser{payload: NewParticipleParser()}
}

// Parse parses a comment block. It never fails: a block that cannot be
// interpreted yields an annotation with only Malformed set, and the error
// describing why is returned alongside for reporting.
func (p *Parser) Parse(block string, loc SourceLocation) (OperationAnnotation, error) {
	annotation, err := p.ParseStrict(block, loc)
	if err != nil {
		return OperationAnnotation{Malformed: true}, err
	}
	return annotation, nil
}

// ParseStrict parses a comment block and returns the first error encountered
func (p *Parser) ParseStrict(block string, loc SourceLocation) (OperationAnnotation, error) {
	var annotation OperationAnnotation

	for _, tag := range splitTags(block) {
		kind, err := ParseTagKind(tag.Name)
		if err != nil {
			continue
		}

		tagLoc := loc
		if tagLoc.Line > 0 {
			tagLoc.Line += tag.Line - 1
		}

		if err := p.applyTag(&annotation, kind, tag.Payload, tagLoc); err != nil {
			return OperationAnnotation{}, err
		}
	}

	return annotation, nil
}

// splitTags splits a comment block into tags. A tag's payload continues over
// following non-blank lines until a blank line or the next tag.
func splitTags(block string) []rawTag {
	var tags []rawTag
	var current *rawTag

	for i, line := range strings.Split(block, "\n") {
		line = cleanCommentLine(line)
		if line == "" {
			current = nil
			continue
		}

		if match := tagLineRegex.FindStringSubmatch(line); match != nil {
			tags = append(tags, rawTag{Name: match[1], Payload: strings.TrimSpace(match[2]), Line: i + 1})
			current = &tags[len(tags)-1]
			continue
		}

		if current != nil {
			if current.Payload == "" {
				current.Payload = line
			} else {
				current.Payload += "\n" + line
			}
		}
	}

	return tags
}

// cleanCommentLine strips comment markers and surrounding whitespace
func cleanCommentLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "//")
	line = strings.TrimPrefix(line, "/*")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "*") {
		line = strings.TrimSpace(strings.TrimLeft(line, "*"))
	}
	return line
}

func (p *Parser) applyTag(a *OperationAnnotation, kind TagKind, payload string, loc SourceLocation) error {
	switch kind {
	case SummaryTag:
		a.Summary = collapseSpaces(payload)
	case DescriptionTag:
		a.Description = strings.TrimSpace(payload)
	case OperationIDTag:
		id := collapseSpaces(payload)
		if err := ValidateOperationID(id); err != nil {
			return newSyntaxError(kind, loc, "operation id "+err.Error(), "Use format: @operationId getUsers")
		}
		a.OperationID = id
	case TagTag:
		if name := collapseSpaces(payload); name != "" {
			a.Tags = append(a.Tags, name)
		}
	case ParamPathTag, ParamQueryTag, ParamHeaderTag, ParamCookieTag:
		param, err := p.parseParameter(kind, payload, loc)
		if err != nil {
			return err
		}
		a.Parameters = upsertParameter(a.Parameters, param)
	case RequestBodyTag, RequestFormDataBodyTag:
		contentType, media, err := p.parseRequestBody(kind, payload, loc)
		if err != nil {
			return err
		}
		if a.RequestBody == nil {
			a.RequestBody = &RequestBody{Content: make(map[string]MediaSpec)}
		}
		a.RequestBody.Content[contentType] = media
	case ResponseBodyTag:
		status, response, err := p.parseResponse(payload, loc)
		if err != nil {
			return err
		}
		if a.Responses == nil {
			a.Responses = make(map[string]ResponseSpec)
		}
		a.Responses[status] = mergeResponse(a.Responses[status], response)
	}
	return nil
}

// parseParameter handles "@paramQuery name - description - @type(integer) @required @example(3)"
func (p *Parser) parseParameter(kind TagKind, payload string, loc SourceLocation) (Parameter, error) {
	parsed, err := p.payload.ParsePayload(payload)
	if err != nil {
		return Parameter{}, newSyntaxError(kind, loc, err.Error(), "")
	}

	head := parsed.Segment(0)
	if len(head.Words) == 0 {
		return Parameter{}, newSyntaxError(kind, loc, "parameter name is required",
			"Use format: @"+kind.String()+" name - description - @type(string) @required")
	}

	if err := ValidateParameterName(head.Words[0]); err != nil {
		return Parameter{}, newSyntaxError(kind, loc, "parameter name "+err.Error(), "")
	}

	in, _ := kind.parameterLocation()
	param := Parameter{
		Name: head.Words[0],
		In:   in,
	}

	var description []string
	if rest := head.Words[1:]; len(rest) > 0 {
		description = append(description, strings.Join(rest, " "))
	}
	for _, seg := range parsed.Segments[1:] {
		if text := seg.Text(); text != "" {
			description = append(description, text)
		}
	}
	param.Description = strings.Join(description, " - ")

	if opt, ok := parsed.Option("type"); ok {
		if err := ValidateParameterType(opt.Arg); err != nil {
			return Parameter{}, newSyntaxError(kind, loc, "@type "+err.Error(), "")
		}
		param.Type = strings.ToLower(opt.Arg)
	}
	if opt, ok := parsed.Option("example"); ok {
		param.Example = opt.Arg
	}
	if opt, ok := parsed.Option("description"); ok && opt.Arg != "" {
		param.Description = opt.Arg
	}
	if _, ok := parsed.Option("required"); ok {
		param.Required = true
	}
	if in == InPath {
		param.Required = true
	}

	return param, nil
}

// parseRequestBody handles "@requestBody [content/type] <Schema>" or a literal example
func (p *Parser) parseRequestBody(kind TagKind, payload string, loc SourceLocation) (string, MediaSpec, error) {
	contentType := DefaultContentType
	if kind == RequestFormDataBodyTag {
		contentType = "multipart/form-data"
	}

	parsed, err := p.payload.ParsePayload(payload)
	if err != nil {
		return "", MediaSpec{}, newSyntaxError(kind, loc, err.Error(), "")
	}

	var words, refs []string
	for _, seg := range parsed.Segments {
		words = append(words, seg.Words...)
		refs = append(refs, seg.Refs...)
	}

	if len(words) > 0 && isContentType(words[0]) {
		contentType = words[0]
		words = words[1:]
		payload = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(payload), contentType))
	}

	if len(refs) > 0 {
		return contentType, refMedia(refs[0]), nil
	}

	if len(words) == 0 {
		return "", MediaSpec{}, newSyntaxError(kind, loc, "request body requires a <Schema> reference or an example",
			"Use format: @"+kind.String()+" <User>")
	}

	return contentType, MediaSpec{Example: strings.TrimSpace(payload)}, nil
}

// parseResponse handles "@responseBody 200 - <User[]> - description @summary(text) @content(type)"
func (p *Parser) parseResponse(payload string, loc SourceLocation) (string, ResponseSpec, error) {
	parsed, err := p.payload.ParsePayload(payload)
	if err != nil {
		return "", ResponseSpec{}, newSyntaxError(ResponseBodyTag, loc, err.Error(), "")
	}

	head := parsed.Segment(0)
	if len(head.Words) == 0 || ValidateStatusCode(head.Words[0]) != nil {
		return "", ResponseSpec{}, newSyntaxError(ResponseBodyTag, loc, "a 3-digit status code is required",
			"Use format: @responseBody 200 - <User> - description")
	}
	status := head.Words[0]

	var response ResponseSpec
	var refs []string
	var description []string

	refs = append(refs, head.Refs...)
	if rest := head.Words[1:]; len(rest) > 0 {
		description = append(description, strings.Join(rest, " "))
	}
	for _, seg := range parsed.Segments[1:] {
		refs = append(refs, seg.Refs...)
		if text := seg.Text(); text != "" {
			description = append(description, text)
		}
	}
	response.Description = strings.Join(description, " - ")

	if opt, ok := parsed.Option("summary"); ok {
		response.Summary = opt.Arg
	}
	if opt, ok := parsed.Option("description"); ok && opt.Arg != "" {
		response.Description = opt.Arg
	}

	if len(refs) > 0 {
		contentType := DefaultContentType
		if opt, ok := parsed.Option("content"); ok && opt.Arg != "" {
			contentType = opt.Arg
		}
		response.Content = map[string]MediaSpec{contentType: refMedia(refs[0])}
	}

	return status, response, nil
}

// refMedia converts "User" or "User[]" into a MediaSpec
func refMedia(ref string) MediaSpec {
	if name, ok := strings.CutSuffix(ref, "[]"); ok {
		return MediaSpec{Schema: name, Array: true}
	}
	return MediaSpec{Schema: ref}
}

func isContentType(word string) bool {
	slash := strings.IndexByte(word, '/')
	return slash > 0 && slash < len(word)-1 && !strings.ContainsAny(word, "{}[]\"<>")
}

// upsertParameter replaces a parameter with the same identity or appends it
func upsertParameter(params []Parameter, param Parameter) []Parameter {
	for i := range params {
		if params[i].Key() == param.Key() {
			params[i] = param
			return params
		}
	}
	return append(params, param)
}

// mergeResponse layers a later @responseBody for the same status over an earlier one
func mergeResponse(existing, next ResponseSpec) ResponseSpec {
	if next.Description != "" {
		existing.Description = next.Description
	}
	if next.Summary != "" {
		existing.Summary = next.Summary
	}
	if len(next.Content) > 0 {
		if existing.Content == nil {
			existing.Content = make(map[string]MediaSpec)
		}
		for contentType, media := range next.Content {
			existing.Content[contentType] = media
		}
	}
	return existing
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
