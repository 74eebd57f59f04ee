package bsonstream

// BSON element type bytes, as they appear on the wire preceding each
// element's name.  Names follow jibby's lower-camel bsonXxx convention.
const (
	bsonDouble         byte = 0x01
	bsonString         byte = 0x02
	bsonDocument       byte = 0x03
	bsonArray          byte = 0x04
	bsonBinary         byte = 0x05
	bsonUndefined      byte = 0x06
	bsonObjectID       byte = 0x07
	bsonBoolean        byte = 0x08
	bsonDate           byte = 0x09
	bsonNull           byte = 0x0A
	bsonRegex          byte = 0x0B
	bsonDBPointer      byte = 0x0C
	bsonCode           byte = 0x0D
	bsonSymbol         byte = 0x0E
	bsonCodeWithScope  byte = 0x0F
	bsonInt32          byte = 0x10
	bsonTimestamp      byte = 0x11
	bsonInt64          byte = 0x12
	bsonDecimal128     byte = 0x13
	bsonMaxKey         byte = 0x7F
	bsonMinKey         byte = 0xFF
)

// objectIDLen is the fixed length, in bytes, of a BSON ObjectId.
const objectIDLen = 12

// outputSlack is the extra capacity ensure() adds when it grows a REALLOC
// buffer (and that the 2.5x initial sizing adds), so repeated small grows
// are rare.  It plays no part in whether a write fits: ensure checks only
// outIdx+n <= outLen, and the wide escape-writer tiers never store past
// the logical output length.
const outputSlack = 32
