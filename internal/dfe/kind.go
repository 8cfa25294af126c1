package dfe

import "strings"

// Kind is the canonical document kind tag carried on every record.
type Kind string

// Stable values (these exact strings end up in file names and exports).
const (
	KindNFe            Kind = "NF-e"          // invoice
	KindCTe            Kind = "CT-e"          // transport manifest
	KindMDFe           Kind = "MDF-e"         // freight manifest
	KindNFSe           Kind = "NFS-e"         // service invoice
	KindEvento         Kind = "Evento"        // bare event
	KindProcEventoNFe  Kind = "procEventoNFe" // processed event envelope, invoice family
	KindProcEventoCTe  Kind = "procEventoCTe" // processed event envelope, transport family
	KindProcEventoMDFe Kind = "procEventoMDFe"
)

// suffixRule maps a root-tag suffix to a document kind.
type suffixRule struct {
	suffix string
	kind   Kind
}

// suffixTable is evaluated in order and the first matching suffix wins.
// Order is load-bearing: the envelope suffixes contain the plain document
// suffixes as substrings (proceventonfe ends in nfe), so the longer and
// more specific entries must come first.
var suffixTable = []suffixRule{
	{"proceventonfe", KindProcEventoNFe},
	{"proceventocte", KindProcEventoCTe},
	{"proceventomdfe", KindProcEventoMDFe},
	{"eventoproc", KindEvento},
	{"evento", KindEvento},
	{"cteproc", KindCTe},
	{"cte", KindCTe},
	{"mdfeproc", KindMDFe},
	{"mdfe", KindMDFe},
	{"compnfse", KindNFSe},
	{"nfse", KindNFSe},
	{"nfeproc", KindNFe},
	{"nfe", KindNFe},
}

// Classify maps a root element to a document kind by suffix-matching its
// lower-cased local name. The second return is false when no suffix matches.
func Classify(root *Node) (Kind, bool) {
	tag := strings.ToLower(root.Local)
	for _, rule := range suffixTable {
		if strings.HasSuffix(tag, rule.suffix) {
			return rule.kind, true
		}
	}
	return "", false
}

// IsEventKind reports whether records of this kind carry event fields.
func (k Kind) IsEventKind() bool {
	switch k {
	case KindEvento, KindProcEventoNFe, KindProcEventoCTe, KindProcEventoMDFe:
		return true
	}
	return false
}
