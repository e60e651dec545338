// Package markup reads and writes content states as XML.
//
// A document looks like:
//
//	<document>
//	  <entities>
//	    <entity key="link" type="LINK" mutability="MUTABLE">
//	      <data name="url">https://example.com</data>
//	    </entity>
//	  </entities>
//	  <block key="a" type="unstyled">Hello <style name="BOLD"><entity key="link">world</entity></style></block>
//	</document>
//
// Style and entity elements nest freely inside a block. An entity element
// without a layer attribute applies to the default layer. Entity data
// values are read back as strings.
package markup
