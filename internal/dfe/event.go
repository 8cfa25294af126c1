package dfe

import "strings"

// extractEvento handles bare event documents, which use the NF-e namespace.
// Unlike the primary extractors, the bare event is all-or-nothing: access
// key, event type code, description and timestamp must all be present.
func extractEvento(root *Node) (Record, error) {
	key, keyOK := root.FindText(nsNFe, "chNFe")
	evType, typeOK := root.FindText(nsNFe, "tpEvento")
	desc, descOK := root.FindText(nsNFe, "xEvento")
	rawDate, dateOK := root.FindText(nsNFe, "dhEvento")

	var missing []string
	if !keyOK {
		missing = append(missing, "chNFe")
	}
	if !typeOK {
		missing = append(missing, "tpEvento")
	}
	if !descOK {
		missing = append(missing, "xEvento")
	}
	if !dateOK {
		missing = append(missing, "dhEvento")
	}
	if len(missing) > 0 {
		return Record{}, missingField(KindEvento, strings.Join(missing, ", "))
	}

	date, err := NormalizeTimestamp(rawDate)
	if err != nil {
		return Record{}, err
	}

	return Record{
		DocumentKind:     string(KindEvento),
		IsEvent:          true,
		AccessKey:        key,
		EventType:        evType,
		EventDescription: desc,
		EventDate:        date,
	}, nil
}

// innerEventTags are the wrappers an envelope may use for its event payload,
// tried in order; the generic tag is the common case, the CT-e and MDF-e
// dialects use their own. Matching is on the lower-cased local name, prefix
// style for the dialect tags, since eventoCTe/eventoMDFe casing varies in
// the wild.
var innerEventTags = []string{"evento", "eventocte", "eventomdf"}

// findInnerEvent locates the envelope's event payload node.
func findInnerEvent(root *Node, ns string) *Node {
	for _, tag := range innerEventTags {
		var match *Node
		root.walk(func(d *Node) bool {
			if d.Space != ns && d.Space != "" {
				return true
			}
			lower := strings.ToLower(d.Local)
			if lower == tag || (tag != "evento" && strings.HasPrefix(lower, tag)) {
				match = d
				return false
			}
			return true
		})
		if match != nil {
			return match
		}
	}
	return nil
}

// extractProcEvento handles processed-event envelopes (procEventoNFe/CTe/
// MDFe). The family namespace is fixed by the envelope kind before any inner
// lookup. Fields of the event info block are pulled opportunistically; only
// the info block itself is required. A present-but-malformed event timestamp
// fails the whole extraction because downstream consumers sort and dedupe
// by it.
func extractProcEvento(root *Node, kind Kind) (Record, error) {
	fam := envelopeFamily(kind)

	evento := findInnerEvent(root, fam.ns)
	if evento == nil {
		return Record{}, missingField(kind, "evento")
	}

	info, err := requireNode(evento, fam.ns, kind, "infEvento", "infEvento")
	if err != nil {
		return Record{}, err
	}

	key, _ := firstText(info, fam.ns,
		[]string{fam.chTag},
		[]string{"chNFe"},
		[]string{"chCTe"},
		[]string{"chMDFe"},
	)

	rec := Record{
		DocumentKind:     string(kind),
		IsEvent:          true,
		AccessKey:        key,
		IssuerID:         optionalText(info, fam.ns, "CNPJ"),
		EventType:        optionalText(info, fam.ns, "tpEvento"),
		EventSequence:    optionalText(info, fam.ns, "nSeqEvento"),
		EventDescription: optionalText(info, fam.ns, "xEvento"),
		Protocol:         optionalText(info, fam.ns, "nProt"),
	}

	if rawDate, ok := info.FindText(fam.ns, "dhEvento"); ok {
		date, err := NormalizeTimestamp(rawDate)
		if err != nil {
			return Record{}, err
		}
		rec.EventDate = date
	}

	// The acknowledgment block is optional; its absence is tolerated.
	ret := root.Find(fam.ns, fam.retTag)
	if ret == nil && fam.retTag != "retEvento" {
		ret = root.Find(fam.ns, "retEvento")
	}
	if ret != nil {
		rec.StatusCode = optionalText(ret, fam.ns, "cStat")
		rec.StatusReason = optionalText(ret, fam.ns, "xMotivo")
		if rec.Protocol == "" {
			rec.Protocol = optionalText(ret, fam.ns, "nProt")
		}
	}

	return rec, nil
}
