package query

import "strings"

// categoryShortcuts expands a bare archive name to a wildcard over all of
// its subject classes.
var categoryShortcuts = map[string]string{
	"cs":       "cs.*",
	"physics":  "physics.*",
	"math":     "math.*",
	"stat":     "stat.*",
	"econ":     "econ.*",
	"q-bio":    "q-bio.*",
	"q-fin":    "q-fin.*",
	"cond-mat": "cond-mat.*",
	"astro-ph": "astro-ph.*",
	"quant-ph": "quant-ph.*",
	"nlin":     "nlin.*",
	"math-ph":  "math-ph.*",
}

// categoryCorrections maps lowercase archive.subject pairs to the canonical
// mixed-case form the arXiv API expects.
var categoryCorrections = map[string]string{
	// Computer Science
	"cs.ai": "cs.AI",
	"cs.ar": "cs.AR",
	"cs.cc": "cs.CC",
	"cs.ce": "cs.CE",
	"cs.cg": "cs.CG",
	"cs.cl": "cs.CL",
	"cs.cr": "cs.CR",
	"cs.cv": "cs.CV",
	"cs.cy": "cs.CY",
	"cs.db": "cs.DB",
	"cs.dc": "cs.DC",
	"cs.dl": "cs.DL",
	"cs.dm": "cs.DM",
	"cs.ds": "cs.DS",
	"cs.et": "cs.ET",
	"cs.fl": "cs.FL",
	"cs.gl": "cs.GL",
	"cs.gr": "cs.GR",
	"cs.gt": "cs.GT",
	"cs.hc": "cs.HC",
	"cs.ir": "cs.IR",
	"cs.it": "cs.IT",
	"cs.lg": "cs.LG",
	"cs.lo": "cs.LO",
	"cs.ma": "cs.MA",
	"cs.mm": "cs.MM",
	"cs.ms": "cs.MS",
	"cs.na": "cs.NA",
	"cs.ne": "cs.NE",
	"cs.ni": "cs.NI",
	"cs.oh": "cs.OH",
	"cs.os": "cs.OS",
	"cs.pf": "cs.PF",
	"cs.pl": "cs.PL",
	"cs.ro": "cs.RO",
	"cs.sc": "cs.SC",
	"cs.sd": "cs.SD",
	"cs.se": "cs.SE",
	"cs.si": "cs.SI",
	"cs.sy": "cs.SY",
	// Statistics
	"stat.ap": "stat.AP",
	"stat.co": "stat.CO",
	"stat.me": "stat.ME",
	"stat.ml": "stat.ML",
	"stat.ot": "stat.OT",
	"stat.th": "stat.TH",
	// Mathematics
	"math.ac": "math.AC",
	"math.ag": "math.AG",
	"math.ap": "math.AP",
	"math.at": "math.AT",
	"math.ca": "math.CA",
	"math.co": "math.CO",
	"math.ct": "math.CT",
	"math.cv": "math.CV",
	"math.dg": "math.DG",
	"math.ds": "math.DS",
	"math.fa": "math.FA",
	"math.gm": "math.GM",
	"math.gn": "math.GN",
	"math.gr": "math.GR",
	"math.gt": "math.GT",
	"math.ho": "math.HO",
	"math.it": "math.IT",
	"math.kt": "math.KT",
	"math.lo": "math.LO",
	"math.mg": "math.MG",
	"math.mp": "math.MP",
	"math.na": "math.NA",
	"math.nt": "math.NT",
	"math.oa": "math.OA",
	"math.oc": "math.OC",
	"math.pr": "math.PR",
	"math.qa": "math.QA",
	"math.ra": "math.RA",
	"math.rt": "math.RT",
	"math.sg": "math.SG",
	"math.sp": "math.SP",
	"math.st": "math.ST",
}

// normalizeCategory resolves a user-supplied category value against the
// shortcut table first and the case-correction table second. Unknown values
// pass through unchanged so new arXiv categories keep working without a
// table update.
func normalizeCategory(category string) string {
	lower := strings.ToLower(category)
	if expanded, ok := categoryShortcuts[lower]; ok {
		return expanded
	}
	if corrected, ok := categoryCorrections[lower]; ok {
		return corrected
	}
	return category
}
