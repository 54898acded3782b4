package docx

import (
	"bytes"
	"fmt"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const wmlNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func (d *Document) contentTypesXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	buf.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	if d.header != nil {
		fmt.Fprintf(&buf, `<Default Extension="%s" ContentType="image/%s"/>`, d.header.ext, d.header.ext)
		buf.WriteString(`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	}
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<w:document ` + wmlNamespaces + `><w:body>`)
	for _, p := range d.paras {
		p.writeXML(&buf)
	}
	buf.WriteString(`<w:sectPr>`)
	if d.header != nil {
		buf.WriteString(`<w:headerReference w:type="default" r:id="rIdHdr"/>`)
	}
	// A4 with one-inch margins.
	buf.WriteString(`<w:pgSz w:w="11906" w:h="16838"/>`)
	buf.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>`)
	buf.WriteString(`</w:sectPr>`)
	buf.WriteString(`</w:body></w:document>`)
	return buf.Bytes()
}

func (d *Document) documentRelsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	if d.header != nil {
		buf.WriteString(`<Relationship Id="rIdHdr" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>`)
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func (d *Document) headerXML() []byte {
	h := d.header
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<w:hdr ` + wmlNamespaces + `>`)
	buf.WriteString(`<w:p><w:pPr><w:jc w:val="right"/></w:pPr><w:r><w:drawing>`)
	buf.WriteString(`<wp:inline distT="0" distB="0" distL="0" distR="0">`)
	fmt.Fprintf(&buf, `<wp:extent cx="%d" cy="%d"/>`, h.cx, h.cy)
	buf.WriteString(`<wp:docPr id="1" name="HeaderLogo"/>`)
	buf.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	buf.WriteString(`<pic:pic>`)
	buf.WriteString(`<pic:nvPicPr><pic:cNvPr id="1" name="HeaderLogo"/><pic:cNvPicPr/></pic:nvPicPr>`)
	buf.WriteString(`<pic:blipFill><a:blip r:embed="rIdImg"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	buf.WriteString(`<pic:spPr><a:xfrm><a:off x="0" y="0"/>`)
	fmt.Fprintf(&buf, `<a:ext cx="%d" cy="%d"/>`, h.cx, h.cy)
	buf.WriteString(`</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	buf.WriteString(`</pic:pic>`)
	buf.WriteString(`</a:graphicData></a:graphic>`)
	buf.WriteString(`</wp:inline></w:drawing></w:r></w:p>`)
	buf.WriteString(`</w:hdr>`)
	return buf.Bytes()
}

func (d *Document) headerRelsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&buf, `<Relationship Id="rIdImg" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.%s"/>`, d.header.ext)
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}
