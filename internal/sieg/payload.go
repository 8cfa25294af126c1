package sieg

import "time"

// XmlType selects the document family on the BaixarXmls endpoint.
type XmlType int

const (
	XmlTypeNFe XmlType = iota + 1
	XmlTypeCTe
	XmlTypeNFSe
	XmlTypeNFCe
	XmlTypeCFe
)

// AllXmlTypes in request order.
var AllXmlTypes = []XmlType{XmlTypeNFe, XmlTypeCTe, XmlTypeNFSe, XmlTypeNFCe, XmlTypeCFe}

func (t XmlType) String() string {
	switch t {
	case XmlTypeNFe:
		return "NFE"
	case XmlTypeCTe:
		return "CTE"
	case XmlTypeNFSe:
		return "NFSE"
	case XmlTypeNFCe:
		return "NFCE"
	case XmlTypeCFe:
		return "CFE"
	}
	return "UNKNOWN"
}

// Payload is the BaixarXmls request body. Field names and the millisecond
// Zulu date format are fixed by the API.
type Payload struct {
	XmlType           XmlType `json:"XmlType"`
	Take              int     `json:"Take"`
	Skip              int     `json:"Skip"`
	DataEmissaoInicio string  `json:"DataEmissaoInicio"`
	DataEmissaoFim    string  `json:"DataEmissaoFim"`
	Downloadevent     bool    `json:"Downloadevent"`
}

const payloadTimeLayout = "2006-01-02T15:04:05.000Z"

// BuildPayload assembles a request for one emission-time window. Take is
// capped at 50, the endpoint's page limit.
func BuildPayload(t XmlType, take, skip int, start, end time.Time) Payload {
	if take <= 0 || take > 50 {
		take = 50
	}
	return Payload{
		XmlType:           t,
		Take:              take,
		Skip:              skip,
		DataEmissaoInicio: start.Format(payloadTimeLayout),
		DataEmissaoFim:    end.Format(payloadTimeLayout),
		Downloadevent:     true,
	}
}
