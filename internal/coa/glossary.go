package coa

import (
	"sort"
	"strings"
)

// glossary holds the mandatory English → Russian pharmaceutical terminology.
// Static configuration data: the translation prompt instructs the model to
// prefer these over any generic translation.
var glossary = map[string]string{
	"acceptance criteria":      "критерии приемлемости",
	"active ingredient":        "действующее вещество",
	"appearance":               "внешний вид",
	"assay":                    "количественное определение",
	"batch":                    "серия",
	"batch number":             "номер серии",
	"batch size":               "размер серии",
	"bulk density":             "насыпная плотность",
	"certificate of analysis":  "сертификат анализа",
	"complies":                 "соответствует",
	"conclusion":               "заключение",
	"conforms":                 "соответствует",
	"dissolution":              "растворение",
	"drug product":             "лекарственный препарат",
	"drug substance":           "фармацевтическая субстанция",
	"endotoxins":               "эндотоксины",
	"expiry date":              "срок годности",
	"heavy metals":             "тяжелые металлы",
	"identification":           "подлинность",
	"impurity":                 "примесь",
	"loss on drying":           "потеря в массе при высушивании",
	"manufacturer":             "производитель",
	"manufacturing date":       "дата производства",
	"method":                   "метод",
	"microbial limits":         "микробиологическая чистота",
	"particle size":            "размер частиц",
	"pharmacopoeia":            "фармакопея",
	"purity":                   "чистота",
	"related substances":       "родственные примеси",
	"release":                  "выпуск",
	"residual solvents":        "остаточные органические растворители",
	"residue on ignition":      "сульфатная зола",
	"result":                   "результат",
	"retest date":              "дата повторного контроля",
	"shelf life":               "срок хранения",
	"specification":            "спецификация",
	"storage conditions":       "условия хранения",
	"test":                     "испытание",
	"water content":            "содержание воды",
	"white powder":             "белый порошок",
	"hplc":                     "ВЭЖХ (высокоэффективная жидкостная хроматография)",
	"gc":                       "ГХ (газовая хроматография)",
	"tlc":                      "ТСХ (тонкослойная хроматография)",
	"uv spectrophotometry":     "УФ-спектрофотометрия",
	"karl fischer titration":   "титрование по Карлу Фишеру",
	"uniformity of dosage":     "однородность дозирования",
	"sterility":                "стерильность",
	"total aerobic count":      "общее число аэробных микроорганизмов",
	"yeasts and moulds":        "дрожжевые и плесневые грибы",
	"quality control":          "контроль качества",
	"quality assurance":        "обеспечение качества",
	"authorized person":        "уполномоченное лицо",
	"visual":                   "визуальный",
	"not more than":            "не более",
	"not less than":            "не менее",
	"protect from light":       "хранить в защищенном от света месте",
	"protect from moisture":    "хранить в сухом месте",
	"room temperature":         "комнатная температура",
	"molecular formula":        "молекулярная формула",
	"molecular weight":         "молекулярная масса",
	"trace":                    "следовые количества",
	"solubility":               "растворимость",
	"melting point":            "температура плавления",
	"optical rotation":         "удельное вращение",
	"ph":                       "pH (водородный показатель)",
	"reference standard":       "стандартный образец",
	"working standard":         "рабочий стандартный образец",
	"limit of detection":       "предел обнаружения",
	"limit of quantification":  "предел количественного определения",
	"package configuration":    "конфигурация упаковки",
	"primary packaging":        "первичная упаковка",
	"active pharmaceutical ingredient": "активная фармацевтическая субстанция",
}

// GlossaryPromptBlock renders the glossary as a sorted text block for prompt
// inclusion.
func GlossaryPromptBlock() string {
	terms := make([]string, 0, len(glossary))
	for en := range glossary {
		terms = append(terms, en)
	}
	sort.Strings(terms)

	var b strings.Builder
	for _, en := range terms {
		b.WriteString(en)
		b.WriteString(" → ")
		b.WriteString(glossary[en])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// GlossarySize reports the number of term pairs; surfaced by the health
// endpoint.
func GlossarySize() int { return len(glossary) }
