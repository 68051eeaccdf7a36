package symptoms

// Keyword tables mapping patient-friendly phrases to the category
// vocabulary used by the question bank. Multiple patterns can match one
// text, giving multi-label extraction.

var symptomKeywords = map[string][]string{
	"chest_pain": {
		`chest`, `heart\s*hurt`, `heart\s*pain`, `angina`,
		`chest\s*tight`, `chest\s*press`,
	},
	"shortness_of_breath": {
		`breath`, `can'?t breathe`, `hard to breathe`,
		`short of breath`, `winded`, `gasp`,
	},
	"palpitations": {
		`heart\s*rac`, `heart\s*flutter`, `palpitat`,
		`heart\s*pound`, `irregular\s*heart`,
	},
	"cough": {
		`\bcough`, `bronchit`, `\bcold\b`, `congesti`,
	},
	"sore_throat": {
		`sore\s*throat`, `throat\s*hurt`, `throat\s*pain`, `strep`,
	},
	"abdominal_pain": {
		`stomach`, `belly`, `abdomen`, `abdominal`,
		`tummy`, `gut\s*pain`, `cramp`,
	},
	"nausea_vomiting": {
		`nausea`, `throw\s*up`, `vomit`, `sick to my`, `queasy`,
	},
	"gi_bleed": {
		`blood.{0,10}stool`, `blood.{0,10}vomit`, `black\s*stool`,
		`rectal\s*bleed`, `bloody\s*stool`,
	},
	"fever": {
		`fever`, `chills`, `temperature`, `sweating`, `\bflu\b`,
	},
	"headache": {
		`headache`, `head\s*hurt`, `head\s*pain`, `migrain`,
	},
	"dizziness": {
		`dizz`, `lightheaded`, `faint`, `vertigo`,
		`room\s*spin`, `pass\s*out`, `black\s*out`,
	},
	"weakness": {
		`weak`, `tired`, `fatigue`, `no\s*energy`, `exhaust`, `run\s*down`,
	},
	"altered_mental": {
		`confus`, `not\s*acting\s*right`, `not\s*making\s*sense`,
		`disoriented`,
	},
	"numbness": {
		`numb`, `tingl`, `pins\s*and\s*needle`,
	},
	"back_pain": {
		`back\s*pain`, `back\s*hurt`, `lower\s*back`,
		`spine`, `sciatica`, `neck\s*(pain|hurt|ache|stiff)`, `\bneck\b`,
	},
	"injury_fall": {
		`\bfall\b`, `\bfell\b`, `injur`, `accident`,
		`hit\s*(my|by)`, `trauma`,
	},
	"fracture": {
		`broke`, `broken`, `fractur`,
	},
	"laceration": {
		`\bcut\b`, `wound`, `bleed`, `lacerat`, `stab`,
	},
	"extremity_pain": {
		`arm\s*(hurt|pain)`, `leg\s*(hurt|pain)`, `knee`,
		`hip\s*pain`, `shoulder`, `ankle`, `wrist`, `elbow`, `joint`,
	},
	"urinary": {
		`urin`, `\bpee\b`, `burn.{0,10}(pee|urin)`, `kidney`, `bladder`,
	},
	"rash": {
		`rash`, `skin\s*(problem|issue)`, `hive`, `itch`, `abscess`,
	},
	"swelling": {
		`swell`, `puffy`, `edema`, `bloat`,
	},
	"eye_problem": {
		`\beyes?\b`, `vision`, `can'?t\s*see`, `blurr`, `double\s*vision`,
	},
	"allergic_reaction": {
		`allerg`, `reaction`,
	},
	"stroke_symptoms": {
		`face\s*droop`, `slur`, `one\s*side`, `stroke`,
		`can'?t\s*move\s*(arm|leg|side)`,
	},
	"anxiety_depression": {
		`anxious`, `anxiety`, `panic`, `depress`,
		`\bsad\b`, `stress`, `nervous`, `worried`,
	},
	"suicide_self_harm": {
		`suicid`, `self.?harm`, `kill\s*my`, `don'?t\s*want\s*to\s*live`,
		`hurt\s*myself`,
	},
}

var historyKeywords = map[string][]string{
	"diabetes": {
		`diabet`, `insulin`, `a1c`, `blood\s*sugar`, `metformin`,
	},
	"high_blood_pressure": {
		`blood\s*pressure`, `hypertens`, `\bbp\b`,
		`lisinopril`, `amlodipine`, `losartan`,
	},
	"heart_problems": {
		`heart\s*(disease|fail|attack|problem|condition|surgery)`,
		`coronary`, `bypass`, `stent`, `afib`, `atrial\s*fib`, `pacemaker`,
	},
	"blood_thinners": {
		`blood\s*thin`, `warfarin`, `coumadin`, `eliquis`,
		`xarelto`, `\bclot\b`, `\bdvt\b`, `anticoag`,
	},
	"high_cholesterol": {
		`cholesterol`, `statin`, `lipid`,
	},
	"asthma_copd": {
		`asthma`, `copd`, `emphysema`, `inhaler`,
		`breathing\s*(problem|condition|disease)`,
	},
	"depression_anxiety": {
		`depress`, `anxiety`, `mental\s*health`, `antidepressant`, `ssri`,
	},
	"thyroid_problems": {
		`thyroid`, `levothyroxine`, `synthroid`,
	},
	"seizure_disorder": {
		`seizur`, `epilep`, `convuls`, `keppra`,
	},
	"kidney_problems": {
		`kidney`, `renal`, `dialysis`,
	},
	"liver_problems": {
		`liver`, `hepat`, `cirrhosis`,
	},
	"cancer": {
		`cancer`, `tumor`, `chemo`, `oncolog`, `leukemia`, `lymphoma`,
	},
	"immunocompromised": {
		`\bhiv\b`, `\baids\b`, `immunocompromised`, `transplant`,
		`immune\s*(deficien|suppress)`,
	},
	"autoimmune_disease": {
		`lupus`, `rheumatoid`, `autoimmune`, `crohn`, `colitis`,
		`multiple\s*sclerosis`,
	},
	"pregnancy": {
		`pregnan`, `contraction`,
	},
}

// noHistoryAnswers are free-text history inputs that mean "nothing".
var noHistoryAnswers = map[string]bool{
	"none": true, "no": true, "nothing": true,
	"n/a": true, "na": true, "nope": true, "": true,
}
