package dfe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nfeFixture = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35200159594315000157550010000000012062777161" versao="4.00">
      <ide>
        <cUF>35</cUF>
        <nNF>1</nNF>
        <dhEmi>2024-12-09T08:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>59594315000157</CNPJ>
        <xNome>Emitente Exemplo LTDA</xNome>
      </emit>
      <dest>
        <CNPJ>47488431000102</CNPJ>
        <xNome>Destinatario Exemplo SA</xNome>
      </dest>
    </infNFe>
  </NFe>
  <protNFe versao="4.00">
    <infProt>
      <chNFe>35200159594315000157550010000000012062777161</chNFe>
      <nProt>135240000000001</nProt>
    </infProt>
  </protNFe>
</nfeProc>`

const nfeLegacyDateFixture = `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35200159594315000157550010000000012062777161">
    <ide><dEmi>2012-03-07</dEmi></ide>
    <emit><CNPJ>59594315000157</CNPJ></emit>
    <dest><CPF>12345678909</CPF></dest>
  </infNFe>
</NFe>`

const nfeBothRecipientIDsFixture = `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35200159594315000157550010000000012062777161">
    <ide><dhEmi>2024-12-09T08:30:00-03:00</dhEmi></ide>
    <emit><CNPJ>59594315000157</CNPJ></emit>
    <dest>
      <CNPJ>47488431000102</CNPJ>
      <CPF>12345678909</CPF>
    </dest>
  </infNFe>
</NFe>`

const nfeMissingIssuerFixture = `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35200159594315000157550010000000012062777161">
    <ide><dhEmi>2024-12-09T08:30:00-03:00</dhEmi></ide>
    <dest><CNPJ>47488431000102</CNPJ></dest>
  </infNFe>
</NFe>`

const nfeShortKeyFixture = `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe1234">
    <ide><dhEmi>2024-12-09T08:30:00-03:00</dhEmi></ide>
    <emit><CNPJ>59594315000157</CNPJ></emit>
    <dest><CNPJ>47488431000102</CNPJ></dest>
  </infNFe>
</NFe>`

const cteFixture = `<cteProc xmlns="http://www.portalfiscal.inf.br/cte" versao="3.00">
  <CTe>
    <infCte Id="CTe35200159594315000157570010000000012062777161" versao="3.00">
      <ide><dhEmi>2024-10-01T10:00:00-03:00</dhEmi></ide>
      <emit><CNPJ>59594315000157</CNPJ></emit>
      <dest><CNPJ>47488431000102</CNPJ></dest>
    </infCte>
  </CTe>
  <protCTe>
    <infProt><nProt>935240000000007</nProt></infProt>
  </protCTe>
</cteProc>`

const mdfeFixture = `<mdfeProc xmlns="http://www.portalfiscal.inf.br/mdfe" versao="3.00">
  <MDFe>
    <infMDFe Id="MDFe35200159594315000157580010000000012062777161" versao="3.00">
      <ide><dhEmi>2024-10-02T07:45:00-03:00</dhEmi></ide>
      <emit><CNPJ>59594315000157</CNPJ></emit>
      <dest><CNPJ>47488431000102</CNPJ></dest>
    </infMDFe>
  </MDFe>
</mdfeProc>`

const nfseFixture = `<CompNfse xmlns="http://www.abrasf.org.br/nfse.xsd">
  <Nfse>
    <InfNfse>
      <Numero>2024000123</Numero>
      <DataEmissao>2024-11-20T14:05:10</DataEmissao>
      <PrestadorServico>
        <IdentificacaoPrestador><Cnpj>59594315000157</Cnpj></IdentificacaoPrestador>
      </PrestadorServico>
      <TomadorServico>
        <IdentificacaoTomador><CpfCnpj><Cnpj>47488431000102</Cnpj></CpfCnpj></IdentificacaoTomador>
      </TomadorServico>
    </InfNfse>
  </Nfse>
</CompNfse>`

const eventoFixture = `<evento xmlns="http://www.portalfiscal.inf.br/nfe" versao="1.00">
  <infEvento Id="ID1101113520015959431500015755001000000001206277716101">
    <chNFe>35200159594315000157550010000000012062777161</chNFe>
    <tpEvento>110111</tpEvento>
    <xEvento>Cancelamento</xEvento>
    <dhEvento>2024-12-10T10:15:00-03:00</dhEvento>
  </infEvento>
</evento>`

const procEventoNFeFixture = `<procEventoNFe xmlns="http://www.portalfiscal.inf.br/nfe" versao="1.00">
  <evento versao="1.00">
    <infEvento Id="ID1101113520015959431500015755001000000001206277716101">
      <cOrgao>35</cOrgao>
      <CNPJ>59594315000157</CNPJ>
      <chNFe>35200159594315000157550010000000012062777161</chNFe>
      <dhEvento>2024-12-10T10:15:00-03:00</dhEvento>
      <tpEvento>110111</tpEvento>
      <nSeqEvento>1</nSeqEvento>
      <xEvento>Cancelamento</xEvento>
    </infEvento>
  </evento>
  <retEvento versao="1.00">
    <infEvento>
      <cStat>135</cStat>
      <xMotivo>Evento registrado e vinculado a NF-e</xMotivo>
      <nProt>135240000000002</nProt>
    </infEvento>
  </retEvento>
</procEventoNFe>`

const procEventoCTeFixture = `<procEventoCTe xmlns="http://www.portalfiscal.inf.br/cte" versao="3.00">
  <eventoCTe versao="3.00">
    <infEvento Id="ID1101813520015959431500015757001000000001206277716101">
      <chCTe>35200159594315000157570010000000012062777161</chCTe>
      <tpEvento>110181</tpEvento>
      <nSeqEvento>2</nSeqEvento>
      <dhEvento>2024-10-05T09:00:00-03:00</dhEvento>
    </infEvento>
  </eventoCTe>
  <retEventoCTe versao="3.00">
    <infEvento>
      <cStat>134</cStat>
      <xMotivo>Evento registrado e vinculado ao CT-e</xMotivo>
      <nProt>935240000000011</nProt>
    </infEvento>
  </retEventoCTe>
</procEventoCTe>`

const procEventoBadTimestampFixture = `<procEventoNFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <evento>
    <infEvento>
      <chNFe>35200159594315000157550010000000012062777161</chNFe>
      <dhEvento>yesterday</dhEvento>
    </infEvento>
  </evento>
</procEventoNFe>`

func TestProcess_NFe(t *testing.T) {
	rec := NewParser(nil).Process(nfeFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "NF-e", rec.DocumentKind)
	assert.Equal(t, "35200159594315000157550010000000012062777161", rec.AccessKey)
	assert.Len(t, rec.AccessKey, 44)
	assert.Equal(t, "59594315000157", rec.IssuerID)
	assert.Equal(t, "47488431000102", rec.RecipientID)
	assert.Equal(t, "2024-12-09 08:30:00", rec.EmissionDate)
	assert.Equal(t, "135240000000001", rec.Protocol)
	assert.False(t, rec.IsEvent)
}

func TestProcess_NFeLegacyDateFallback(t *testing.T) {
	rec := NewParser(nil).Process(nfeLegacyDateFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "2012-03-07 00:00:00", rec.EmissionDate)
	assert.Equal(t, "12345678909", rec.RecipientID)
	assert.Empty(t, rec.Protocol)
}

func TestProcess_RecipientPrefersCNPJOverCPF(t *testing.T) {
	rec := NewParser(nil).Process(nfeBothRecipientIDsFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)
	assert.Equal(t, "47488431000102", rec.RecipientID)
}

func TestProcess_NFeMissingIssuerFails(t *testing.T) {
	rec := NewParser(nil).Process(nfeMissingIssuerFixture)
	require.False(t, rec.OK())

	assert.Contains(t, rec.Error, "issuer CNPJ")
	assert.Equal(t, "NF-e", rec.DocumentKind)
	// failure records carry no business fields
	assert.Empty(t, rec.AccessKey)
	assert.Empty(t, rec.IssuerID)
	assert.Empty(t, rec.RecipientID)
	assert.Empty(t, rec.EmissionDate)
}

func TestProcess_NFeShortAccessKeyFails(t *testing.T) {
	rec := NewParser(nil).Process(nfeShortKeyFixture)
	require.False(t, rec.OK())
	assert.Contains(t, rec.Error, "44 digits")
}

func TestProcess_CTe(t *testing.T) {
	rec := NewParser(nil).Process(cteFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "CT-e", rec.DocumentKind)
	assert.Equal(t, "35200159594315000157570010000000012062777161", rec.AccessKey)
	assert.Equal(t, "2024-10-01 10:00:00", rec.EmissionDate)
	assert.Equal(t, "935240000000007", rec.Protocol)
}

func TestProcess_MDFe(t *testing.T) {
	rec := NewParser(nil).Process(mdfeFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "MDF-e", rec.DocumentKind)
	assert.Equal(t, "35200159594315000157580010000000012062777161", rec.AccessKey)
	assert.Empty(t, rec.Protocol)
}

func TestProcess_NFSe(t *testing.T) {
	rec := NewParser(nil).Process(nfseFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "NFS-e", rec.DocumentKind)
	assert.Equal(t, "2024000123", rec.AccessKey)
	assert.Equal(t, "59594315000157", rec.IssuerID)
	assert.Equal(t, "47488431000102", rec.RecipientID)
	assert.Equal(t, "2024-11-20 14:05:10", rec.EmissionDate)
	assert.Equal(t, "2024000123", rec.Protocol)
}

func TestProcess_Evento(t *testing.T) {
	rec := NewParser(nil).Process(eventoFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "Evento", rec.DocumentKind)
	assert.True(t, rec.IsEvent)
	assert.Equal(t, "35200159594315000157550010000000012062777161", rec.AccessKey)
	assert.Equal(t, "110111", rec.EventType)
	assert.Equal(t, "Cancelamento", rec.EventDescription)
	assert.Equal(t, "2024-12-10 10:15:00", rec.EventDate)
}

func TestProcess_EventoAnyMissingFieldFails(t *testing.T) {
	withoutDesc := strings.Replace(eventoFixture, "<xEvento>Cancelamento</xEvento>", "", 1)
	rec := NewParser(nil).Process(withoutDesc)
	require.False(t, rec.OK())
	assert.Contains(t, rec.Error, "xEvento")
}

func TestProcess_ProcEventoNFe(t *testing.T) {
	rec := NewParser(nil).Process(procEventoNFeFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "procEventoNFe", rec.DocumentKind)
	assert.True(t, rec.IsEvent)
	assert.Equal(t, "35200159594315000157550010000000012062777161", rec.AccessKey)
	assert.Equal(t, "59594315000157", rec.IssuerID)
	assert.Equal(t, "110111", rec.EventType)
	assert.Equal(t, "1", rec.EventSequence)
	assert.Equal(t, "Cancelamento", rec.EventDescription)
	assert.Equal(t, "2024-12-10 10:15:00", rec.EventDate)
	assert.Equal(t, "135", rec.StatusCode)
	assert.Equal(t, "Evento registrado e vinculado a NF-e", rec.StatusReason)
	assert.Equal(t, "135240000000002", rec.Protocol)
}

func TestProcess_ProcEventoCTe(t *testing.T) {
	rec := NewParser(nil).Process(procEventoCTeFixture)
	require.True(t, rec.OK(), "unexpected error: %s", rec.Error)

	assert.Equal(t, "procEventoCTe", rec.DocumentKind)
	assert.Equal(t, "35200159594315000157570010000000012062777161", rec.AccessKey)
	assert.Equal(t, "110181", rec.EventType)
	assert.Equal(t, "2", rec.EventSequence)
	assert.Equal(t, "134", rec.StatusCode)
	assert.Equal(t, "935240000000011", rec.Protocol)
	// author CNPJ and description are optional in envelopes
	assert.Empty(t, rec.IssuerID)
	assert.Empty(t, rec.EventDescription)
}

func TestProcess_ProcEventoMalformedTimestampFails(t *testing.T) {
	rec := NewParser(nil).Process(procEventoBadTimestampFixture)
	require.False(t, rec.OK())
	assert.Contains(t, rec.Error, "yesterday")
	// hard failure: no partial record
	assert.Empty(t, rec.AccessKey)
}

func TestProcess_UnknownRootTag(t *testing.T) {
	rec := NewParser(nil).Process(`<consStatServ xmlns="http://www.portalfiscal.inf.br/nfe"/>`)
	require.False(t, rec.OK())
	assert.Contains(t, rec.Error, "consStatServ")
}

func TestProcess_MalformedInput(t *testing.T) {
	for _, raw := range []string{"", "definitely not xml", "<NFe><infNFe></NFe>"} {
		rec := NewParser(nil).Process(raw)
		require.False(t, rec.OK(), "input %q", raw)
		assert.Empty(t, rec.DocumentKind)
	}
}

func TestProcessAll_BatchIndependence(t *testing.T) {
	batch := []string{
		nfeFixture,
		cteFixture,
		"<<< broken markup >>>",
		nfseFixture,
		procEventoNFeFixture,
	}
	records := NewParser(nil).ProcessAll(batch)
	require.Len(t, records, 5)

	assert.True(t, records[0].OK())
	assert.True(t, records[1].OK())
	assert.False(t, records[2].OK())
	assert.True(t, records[3].OK())
	assert.True(t, records[4].OK())
}
