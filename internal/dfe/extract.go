package dfe

import (
	"fmt"
	"strings"
)

// extractPrimary handles NF-e, CT-e and MDF-e, which share the same
// structure under their own namespaces.
func extractPrimary(root *Node, fam family) (Record, error) {
	issuer, err := requireText(root, fam.ns, fam.kind, "issuer CNPJ", "emit", "CNPJ")
	if err != nil {
		return Record{}, err
	}

	// CNPJ is preferred over CPF; at least one must identify the recipient.
	recipient, ok := firstText(root, fam.ns,
		[]string{"dest", "CNPJ"},
		[]string{"dest", "CPF"},
	)
	if !ok {
		return Record{}, missingField(fam.kind, "recipient CNPJ/CPF")
	}

	key, err := accessKeyFromInfoBlock(root, fam)
	if err != nil {
		return Record{}, err
	}

	rawDate, ok := root.FindText(fam.ns, "ide", "dhEmi")
	if !ok && fam.legacyEmi {
		// Archived NF-e predating the dhEmi field only carry the
		// date-only dEmi.
		rawDate, ok = root.FindText(fam.ns, "ide", "dEmi")
	}
	if !ok {
		return Record{}, missingField(fam.kind, "emission date")
	}
	emission, err := NormalizeTimestamp(rawDate)
	if err != nil {
		return Record{}, err
	}

	return Record{
		DocumentKind: string(fam.kind),
		AccessKey:    key,
		IssuerID:     issuer,
		RecipientID:  recipient,
		EmissionDate: emission,
		Protocol:     optionalText(root, fam.ns, fam.protTag, "infProt", "nProt"),
	}, nil
}

// accessKeyFromInfoBlock reads the Id attribute of the family's information
// block and strips the family prefix, leaving the bare 44-digit key.
func accessKeyFromInfoBlock(root *Node, fam family) (string, error) {
	info, err := requireNode(root, fam.ns, fam.kind, "access key", fam.infoTag)
	if err != nil {
		return "", err
	}
	id, ok := info.Attr("Id")
	if !ok {
		return "", missingField(fam.kind, "access key")
	}
	key := strings.TrimPrefix(id, fam.keyPrefix)
	if !isDigits(key) || len(key) != 44 {
		return "", malformedInput(
			fmt.Sprintf("access key %q is not 44 digits after stripping the %s prefix", id, fam.keyPrefix), nil)
	}
	return key, nil
}

// extractNFSe handles service invoices. The identifying number lives nested
// inside the InfNfse block and doubles as the protocol; there is no legacy
// emission date fallback.
func extractNFSe(root *Node) (Record, error) {
	number, err := requireText(root, nsNFSe, KindNFSe, "NFS-e number", "InfNfse", "Numero")
	if err != nil {
		return Record{}, err
	}

	issuer, ok := firstText(root, nsNFSe,
		[]string{"PrestadorServico", "IdentificacaoPrestador", "Cnpj"},
		[]string{"Prestador", "Cnpj"},
	)
	if !ok {
		return Record{}, missingField(KindNFSe, "provider CNPJ")
	}

	recipient, ok := firstText(root, nsNFSe,
		[]string{"TomadorServico", "IdentificacaoTomador", "CpfCnpj", "Cnpj"},
		[]string{"Tomador", "IdentificacaoTomador", "CpfCnpj", "Cnpj"},
		[]string{"Tomador", "IdentificacaoTomador", "Cnpj"},
		[]string{"TomadorServico", "IdentificacaoTomador", "CpfCnpj", "Cpf"},
		[]string{"Tomador", "IdentificacaoTomador", "Cpf"},
	)
	if !ok {
		return Record{}, missingField(KindNFSe, "taker CNPJ/CPF")
	}

	rawDate, ok := firstText(root, nsNFSe,
		[]string{"InfNfse", "DataEmissao"},
		[]string{"DataEmissao"},
	)
	if !ok {
		return Record{}, missingField(KindNFSe, "emission date")
	}
	emission, err := NormalizeTimestamp(rawDate)
	if err != nil {
		return Record{}, err
	}

	return Record{
		DocumentKind: string(KindNFSe),
		AccessKey:    number,
		IssuerID:     issuer,
		RecipientID:  recipient,
		EmissionDate: emission,
		Protocol:     number,
	}, nil
}
