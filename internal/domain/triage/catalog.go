package triage

import "strings"

// CatalogEntry is a known disease with a pre-assigned priority. LocalName
// carries the Hindi display name for bilingual intake forms.
type CatalogEntry struct {
	Name      string   `json:"name"`
	LocalName string   `json:"localName"`
	Priority  Priority `json:"priority"`
}

// catalog is the static reference data consulted before any fuzzy matching.
// Entries are authoritative: a catalog hit bypasses the keyword bags entirely.
var catalog = []CatalogEntry{
	{"Prostate Cancer", "प्रोस्टेट कैंसर", PriorityHigh},
	{"Erectile Dysfunction", "स्तंभन दोष", PriorityMedium},
	{"Testicular Cancer", "अंडकोष का कैंसर", PriorityHigh},
	{"Male Pattern Baldness", "पुरुष गंजापन", PriorityLow},
	{"Cardiovascular Disease", "हृदय रोग", PriorityHigh},
	{"Gout", "गाउट", PriorityMedium},
	{"Hypertension", "उच्च रक्तचाप", PriorityHigh},
	{"Type-2 Diabetes", "टाइप-2 मधुमेह", PriorityHigh},
	{"Hernia", "हर्निया", PriorityMedium},
	{"Liver Cirrhosis", "यकृत सिरोसिस", PriorityHigh},
	{"Breast Cancer", "स्तन कैंसर", PriorityHigh},
	{"Polycystic Ovary Syndrome", "पॉलीसिस्टिक ओवरी सिंड्रोम", PriorityMedium},
	{"Cervical Cancer", "ग्रीवा कैंसर", PriorityHigh},
	{"Endometriosis", "एंडोमेट्रियोसिस", PriorityMedium},
	{"Menstrual Disorders", "मासिक धर्म विकार", PriorityMedium},
	{"Osteoporosis", "हड्डियों का क्षय", PriorityMedium},
	{"Uterine Fibroids", "गर्भाशय फाइब्रॉयड", PriorityMedium},
	{"Pregnancy Complications", "गर्भावस्था की जटिलताएँ", PriorityHigh},
	{"Thyroid Disorders", "थायराइड विकार", PriorityMedium},
	{"Urinary Tract Infections", "मूत्र मार्ग संक्रमण", PriorityMedium},
	{"Measles", "खसरा", PriorityMedium},
	{"Chickenpox", "चिकनपॉक्स", PriorityMedium},
	{"Whooping Cough", "काली खांसी", PriorityHigh},
	{"Asthma", "अस्थमा", PriorityHigh},
	{"Rickets", "सूखा रोग", PriorityMedium},
	{"Mumps", "गलसुआ", PriorityMedium},
	{"Diarrhea", "दस्त", PriorityMedium},
	{"Hand-Foot-Mouth Disease", "हाथ-पैर-मुँह रोग", PriorityMedium},
	{"Malnutrition", "कुपोषण", PriorityHigh},
	{"Neonatal Jaundice", "नवजात पीलिया", PriorityHigh},
	{"Cancer", "कैंसर", PriorityHigh},
	{"Stroke", "स्ट्रोक", PriorityHigh},
	{"Heart Attack", "दिल का दौरा", PriorityHigh},
	{"Tuberculosis", "तपेदिक", PriorityHigh},
	{"HIV/AIDS", "एचआईवी/एड्स", PriorityHigh},
	{"Chronic Obstructive Pulmonary Disease", "फेफड़ों की बीमारी", PriorityHigh},
	{"Alzheimer's Disease", "अल्ज़ाइमर रोग", PriorityHigh},
	{"Parkinson's Disease", "पार्किंसन रोग", PriorityHigh},
	{"Kidney Failure", "गुर्दा फेल", PriorityHigh},
	{"Hepatitis", "हेपेटाइटिस", PriorityHigh},
	{"Common Cold", "सर्दी-जुकाम", PriorityLow},
	{"Flu", "फ्लू", PriorityMedium},
	{"Migraine", "माइग्रेन", PriorityMedium},
	{"Sinusitis", "साइनस", PriorityLow},
	{"Acne", "मुहांसे", PriorityLow},
	{"Allergies", "एलर्जी", PriorityMedium},
	{"Food Poisoning", "फूड पॉइज़निंग", PriorityMedium},
	{"Conjunctivitis", "आँख आना", PriorityLow},
	{"Scabies", "खाज-खुजली", PriorityLow},
	{"Dengue Fever", "डेंगू बुखार", PriorityHigh},
	{"Other", "अन्य", PriorityMedium},
}

// catalogIndex maps normalized canonical names to catalog entries.
var catalogIndex = func() map[string]CatalogEntry {
	idx := make(map[string]CatalogEntry, len(catalog))
	for _, e := range catalog {
		idx[normalize(e.Name)] = e
	}
	return idx
}()

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LookupDisease returns the catalog entry for a canonical disease name.
// Matching is exact after trimming and case folding.
func LookupDisease(name string) (CatalogEntry, bool) {
	e, ok := catalogIndex[normalize(name)]
	return e, ok
}

// Catalog returns all known disease entries in their declared order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}
