package vanilla

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

var inputTypes = map[schema.FieldKind]string{
	schema.KindText:     "text",
	schema.KindEmail:    "email",
	schema.KindNumber:   "number",
	schema.KindDate:     "date",
	schema.KindTime:     "time",
	schema.KindDatetime: "datetime-local",
	schema.KindFile:     "file",
	schema.KindURL:      "url",
	schema.KindTel:      "tel",
	schema.KindColor:    "color",
}

func (r *Renderer) renderField(field schema.Field, options render.Options) string {
	var control string
	switch {
	case field.Kind == schema.KindTextarea:
		control = r.textareaControl(field, options)
	case field.Kind == schema.KindSelect:
		control = r.selectControl(field, options)
	case field.Kind == schema.KindRadio:
		control = r.radioControl(field, options)
	case field.Kind == schema.KindCheckbox:
		control = r.checkboxControl(field, options)
	default:
		if inputType, ok := inputTypes[field.Kind]; ok {
			control = r.inputControl(field, inputType, options)
		} else {
			// Unknown kinds stay visible so stored data is never silently
			// dropped from the user's view.
			return r.unsupportedPlaceholder(field)
		}
	}
	return r.wrapControl(field, control, options)
}

func (r *Renderer) wrapControl(field schema.Field, control string, options render.Options) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="fk-field" data-kind="`)
	b.WriteString(html.EscapeString(string(field.Kind)))
	b.WriteString("\">\n")

	if field.Kind != schema.KindCheckbox {
		b.WriteString(`    <label for="fk-`)
		b.WriteString(html.EscapeString(field.ID))
		b.WriteString(`" class="fk-label">`)
		b.WriteString(r.cleanText(field.DisplayLabel()))
		if field.Required {
			b.WriteString(` <span class="fk-required">*</span>`)
		}
		b.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, message := range options.Errors[field.ID] {
		b.WriteString(`    <small class="fk-error">`)
		b.WriteString(r.cleanText(message))
		b.WriteString("</small>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

func (r *Renderer) inputControl(field schema.Field, inputType string, options render.Options) string {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(inputType)
	b.WriteString(`" id="fk-`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Key()))
	b.WriteString(`" class="fk-input"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(r.cleanText(field.Placeholder))
		b.WriteString(`"`)
	}
	if value, ok := prefill(field.ID, options); ok && inputType != "file" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`>`)
	return b.String()
}

func (r *Renderer) textareaControl(field schema.Field, options render.Options) string {
	var b strings.Builder
	b.WriteString(`<textarea id="fk-`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Key()))
	b.WriteString(`" class="fk-textarea" rows="4"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(r.cleanText(field.Placeholder))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`>`)
	if value, ok := prefill(field.ID, options); ok {
		b.WriteString(html.EscapeString(value))
	}
	b.WriteString(`</textarea>`)
	return b.String()
}

func (r *Renderer) selectControl(field schema.Field, options render.Options) string {
	current, _ := prefill(field.ID, options)

	var b strings.Builder
	b.WriteString(`<select id="fk-`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Key()))
	b.WriteString(`" class="fk-select"`)
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">\n")
	b.WriteString(`<option value="">`)
	if field.Placeholder != "" {
		b.WriteString(r.cleanText(field.Placeholder))
	} else {
		b.WriteString("Choose...")
	}
	b.WriteString("</option>\n")
	for _, option := range field.Options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(option))
		b.WriteString(`"`)
		if option == current && current != "" {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(r.cleanText(option))
		b.WriteString("</option>\n")
	}
	b.WriteString(`</select>`)
	return b.String()
}

func (r *Renderer) radioControl(field schema.Field, options render.Options) string {
	current, _ := prefill(field.ID, options)

	var b strings.Builder
	b.WriteString(`<div class="fk-radio-group" role="radiogroup">` + "\n")
	for i, option := range field.Options {
		controlID := fmt.Sprintf("fk-%s-%d", field.ID, i)
		b.WriteString(`<label class="fk-radio"><input type="radio" id="`)
		b.WriteString(html.EscapeString(controlID))
		b.WriteString(`" name="`)
		b.WriteString(html.EscapeString(field.Key()))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(option))
		b.WriteString(`"`)
		if option == current && current != "" {
			b.WriteString(` checked`)
		}
		if field.Required {
			b.WriteString(` required`)
		}
		b.WriteString(`> `)
		b.WriteString(r.cleanText(option))
		b.WriteString("</label>\n")
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (r *Renderer) checkboxControl(field schema.Field, options render.Options) string {
	checked := false
	if value, ok := options.Values[field.ID]; ok {
		if boolean, isBool := value.(render.BoolValue); isBool {
			checked = bool(boolean)
		}
	}

	var b strings.Builder
	b.WriteString(`<label class="fk-checkbox"><input type="checkbox" id="fk-`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Key()))
	b.WriteString(`"`)
	if checked {
		b.WriteString(` checked`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`> `)
	b.WriteString(r.cleanText(field.DisplayLabel()))
	if field.Required {
		b.WriteString(` <span class="fk-required">*</span>`)
	}
	b.WriteString(`</label>`)
	return b.String()
}

func (r *Renderer) unsupportedPlaceholder(field schema.Field) string {
	var b strings.Builder
	b.WriteString(`<div class="fk-field fk-unsupported" data-kind="`)
	b.WriteString(html.EscapeString(string(field.Kind)))
	b.WriteString("\">\n    <span class=\"fk-label\">")
	b.WriteString(r.cleanText(field.DisplayLabel()))
	b.WriteString("</span>\n    <p class=\"fk-unsupported-note\">Unsupported field type ")
	b.WriteString(html.EscapeString(fmt.Sprintf("%q", string(field.Kind))))
	b.WriteString("</p>\n</div>\n")
	return b.String()
}

// cleanText strips markup from schema-supplied text. The strict policy also
// entity-escapes its output, so the result is safe in element and quoted
// attribute context without a second escaping pass.
func (r *Renderer) cleanText(text string) string {
	return r.sanitizer.Sanitize(text)
}

func prefill(id string, options render.Options) (string, bool) {
	value, ok := options.Values[id]
	if !ok || value == nil {
		return "", false
	}
	switch v := value.(type) {
	case render.StringValue:
		return string(v), true
	case render.NumberValue:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", float64(v)), "0"), "."), true
	default:
		return "", false
	}
}
