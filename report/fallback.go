package report

import (
	"sort"
	"strings"

	"github.com/ByLCY/medreport/binding"
	"github.com/ByLCY/medreport/narrative"
	"github.com/ByLCY/medreport/upstream"
)

var patientTemplate = []string{
	"Name: ${firstName|Unknown} ${lastName|}",
	"Date of birth: ${dateOfBirth|Not recorded}",
	"Gender: ${gender|Not recorded}",
	"Medical history: ${medicalHistory|None recorded}",
	"Allergies: ${allergies|None recorded}",
	"Current medications: ${medications|None recorded}",
}

const (
	visitTemplate = "• ${date|Undated} ${visitType|Visit}: ${chiefComplaint|No chief complaint recorded}. " +
		"Diagnosis: ${diagnosis|Not documented}. Treatment: ${treatment|Not documented}."
	noteTemplate = "${date|Undated} (${provider|Unknown provider}): ${notes}"
)

// FallbackNarrative 在上游不可用时根据患者资料与就诊记录生成叙述，
// 格式与上游叙述一致：Patient Information、Visit History、Clinical Notes 三段。
func FallbackNarrative(p upstream.Patient, visits []upstream.Visit) string {
	var b strings.Builder

	b.WriteString("**Patient Information:**\n")
	data, err := binding.FromStruct(p)
	if err != nil {
		data = nil
	}
	for _, tpl := range patientTemplate {
		b.WriteString(clean(binding.Interpolate(tpl, data)))
		b.WriteString("\n")
	}

	sorted := append([]upstream.Visit(nil), visits...)
	// 日期为 YYYY-MM-DD，按字符串倒序即为由新到旧
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	b.WriteString("\n**Visit History:**\n")
	if len(sorted) == 0 {
		b.WriteString("No visits on record.\n")
	}
	var notes []string
	for _, v := range sorted {
		vd, err := binding.FromStruct(v)
		if err != nil {
			continue
		}
		b.WriteString(clean(binding.Interpolate(visitTemplate, vd)))
		b.WriteString("\n")
		if strings.TrimSpace(v.Notes) != "" {
			notes = append(notes, clean(binding.Interpolate(noteTemplate, vd)))
		}
	}

	b.WriteString("\n**Clinical Notes:**\n")
	if len(notes) == 0 {
		b.WriteString("No additional clinical notes were recorded.\n")
	}
	for _, n := range notes {
		b.WriteString(n)
		b.WriteString("\n")
	}
	return b.String()
}

// clean 去掉值中的粗体标记与换行，避免患者数据被识别为章节标题。
func clean(s string) string {
	s = narrative.StripBold(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
