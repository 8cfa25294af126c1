package dfe

// Namespace URIs of the fiscal document dialects.
const (
	nsNFe  = "http://www.portalfiscal.inf.br/nfe"
	nsCTe  = "http://www.portalfiscal.inf.br/cte"
	nsMDFe = "http://www.portalfiscal.inf.br/mdfe"
	nsNFSe = "http://www.abrasf.org.br/nfse.xsd"
)

// family captures the per-dialect tag conventions shared by NF-e, CT-e and
// MDF-e, which are structurally analogous. Lookups always use the family's
// own namespace, never a guessed one.
type family struct {
	kind      Kind
	ns        string
	infoTag   string // information block whose Id attribute carries the key
	keyPrefix string // prefix stripped from the Id attribute
	protTag   string // protocol wrapper element
	chTag     string // access key element inside event info blocks
	retTag    string // event result block
	legacyEmi bool   // older documents carry dEmi instead of dhEmi
}

var (
	familyNFe = family{
		kind:      KindNFe,
		ns:        nsNFe,
		infoTag:   "infNFe",
		keyPrefix: "NFe",
		protTag:   "protNFe",
		chTag:     "chNFe",
		retTag:    "retEvento",
		legacyEmi: true,
	}
	familyCTe = family{
		kind:      KindCTe,
		ns:        nsCTe,
		infoTag:   "infCte",
		keyPrefix: "CTe",
		protTag:   "protCTe",
		chTag:     "chCTe",
		retTag:    "retEventoCTe",
	}
	familyMDFe = family{
		kind:      KindMDFe,
		ns:        nsMDFe,
		infoTag:   "infMDFe",
		keyPrefix: "MDFe",
		protTag:   "protMDFe",
		chTag:     "chMDFe",
		retTag:    "retEventoMDFe",
	}
)

// envelopeFamily resolves the inner dialect of a processed-event envelope
// from its envelope kind.
func envelopeFamily(kind Kind) family {
	switch kind {
	case KindProcEventoCTe:
		return familyCTe
	case KindProcEventoMDFe:
		return familyMDFe
	default:
		return familyNFe
	}
}
