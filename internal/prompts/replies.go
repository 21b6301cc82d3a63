package prompts

// ============================================================================
// Shared lexicon
// ============================================================================

// RomanUrduWords is the fixed whole-word lexicon used by language detection.
// Two or more hits in a lowercased message classify it as Roman Urdu.
var RomanUrduWords = []string{
	"mera", "meri", "mere", "mujhe", "main", "mein", "hum", "aap", "tum",
	"hai", "hain", "tha", "thi", "hoga", "hogi", "raha", "rahi", "rahe",
	"nahi", "nahin", "kya", "kyun", "kyu", "kaise", "kab", "kahan", "kitna",
	"ka", "ki", "ke", "ko", "se", "par", "liye", "wala", "wali",
	"karna", "karein", "karo", "hota", "hoti", "lagta", "lagti",
	"bohat", "bahut", "thora", "zyada", "bilkul", "sahi", "theek",
	"daant", "dant", "masoora", "masooron", "dard", "ilaj", "taar", "dawa",
}

// ============================================================================
// Canned localized replies
// ============================================================================

// Canned replies are pre-localized per language so the GREETING, META, and
// IRRELEVANT branches never need translation or generation.

// Greetings maps a detected language to the canned greeting reply.
var Greetings = map[string]string{
	"english":    "Hello! I'm your dental care assistant. Ask me anything about braces, aligners, retainers, or general dental health.",
	"urdu":       "السلام علیکم! میں آپ کا ڈینٹل کیئر اسسٹنٹ ہوں۔ بریسز، الائنرز، ریٹینرز یا دانتوں کی صحت کے بارے میں کچھ بھی پوچھیں۔",
	"roman-urdu": "Assalam o Alaikum! Main aap ka dental care assistant hoon. Braces, aligners, retainers ya daanton ki sehat ke baare mein kuch bhi poochein.",
}

// MetaReplies maps a detected language to the canned self-description reply.
var MetaReplies = map[string]string{
	"english":    "I'm an AI assistant built to answer questions about braces and dental care. I can explain treatments, help with common braces problems, and share care tips.",
	"urdu":       "میں ایک اے آئی اسسٹنٹ ہوں جو بریسز اور دانتوں کی دیکھ بھال کے سوالات کے جواب دیتا ہوں۔ میں علاج سمجھا سکتا ہوں اور عام مسائل میں مدد کر سکتا ہوں۔",
	"roman-urdu": "Main aik AI assistant hoon jo braces aur dental care ke sawalon ke jawab deta hoon. Main ilaj samjha sakta hoon aur aam masail mein madad kar sakta hoon.",
}

// IrrelevantReplies maps a detected language to the canned off-topic reply.
var IrrelevantReplies = map[string]string{
	"english":    "I can only help with dental and orthodontic questions. Is there anything about your teeth, braces, or oral health I can help with?",
	"urdu":       "میں صرف دانتوں اور آرتھوڈانٹک سوالات میں مدد کر سکتا ہوں۔ کیا آپ کے دانتوں، بریسز یا منہ کی صحت کے بارے میں کوئی سوال ہے؟",
	"roman-urdu": "Main sirf daanton aur orthodontic sawalon mein madad kar sakta hoon. Kya aap ke daanton, braces ya oral health ke baare mein koi sawal hai?",
}

// SafeFallbacks maps a detected language to the reply used when every
// generation path has failed. Failures must not regress users to English.
var SafeFallbacks = map[string]string{
	"english":    "I'm having trouble answering right now. For anything urgent, please contact your dentist or orthodontist directly.",
	"urdu":       "مجھے ابھی جواب دینے میں دشواری ہو رہی ہے۔ کسی بھی فوری مسئلے کے لیے براہ کرم اپنے ڈینٹسٹ یا آرتھوڈانٹسٹ سے رابطہ کریں۔",
	"roman-urdu": "Mujhe abhi jawab dene mein mushkil ho rahi hai. Kisi bhi zaroori masle ke liye barah-e-karam apne dentist ya orthodontist se raabta karein.",
}

// Reply returns the entry for lang from table, falling back to English.
func Reply(table map[string]string, lang string) string {
	if text, ok := table[lang]; ok {
		return text
	}
	return table["english"]
}
