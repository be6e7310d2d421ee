package modbuscomm

import (
	"math"
	"math/rand"
	"testing"

	"gotest.tools/v3/assert"
)

// Encode-Decode U64
func TestEncodeU64Big(t *testing.T) {
	testReg := Register{"test", 0, u64, 3, ReadOnly, bigEndian, 0}
	var testVal float64 = 1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to U64 to big-endian []bytes: %v", testVal, bytes)

	assertBytes := [8]byte{0, 0, 0, 0, 0, 0, 4, 210}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

func TestDecodeU64Big(t *testing.T) {
	testReg := Register{"test", 0, u64, 3, ReadOnly, bigEndian, 0}
	assertVal := rand.Float64() * 9223372036854775807
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: [%v] U64 big-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, testVal == math.Floor(assertVal))
}

func TestEncodeU64Little(t *testing.T) {
	testReg := Register{"test", 0, u64, 3, ReadOnly, littleEndian, 0}
	var testVal float64 = 1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to U64 to little-endian []bytes: %v", testVal, bytes)

	assertBytes := [8]byte{210, 4, 0, 0, 0, 0, 0, 0}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

// Encode-Decode U32
func TestEncodeU32Big(t *testing.T) {
	testReg := Register{"test", 0, u32, 3, ReadOnly, bigEndian, 0}
	var testVal float64 = 1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to U32 to big-endian []bytes: %v", testVal, bytes)

	assertBytes := [4]byte{0, 0, 4, 210}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

func TestDecodeU32Little(t *testing.T) {
	testReg := Register{"test", 0, u32, 3, ReadOnly, littleEndian, 0}
	assertVal := rand.Float64() * 4294967295
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: [%v] U32 little-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, testVal == math.Floor(assertVal))
}

// Encode-Decode U16
func TestEncodeU16Big(t *testing.T) {
	testReg := Register{"test", 0, u16, 3, ReadOnly, bigEndian, 0}
	var testVal float64 = 1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to U16 to big-endian []bytes: %v", testVal, bytes)

	assertBytes := [2]byte{4, 210}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

func TestDecodeU16Little(t *testing.T) {
	testReg := Register{"test", 0, u16, 3, ReadOnly, littleEndian, 0}
	assertVal := rand.Float64() * 65535
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: [%v] U16 little-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, testVal == math.Floor(assertVal))
}

// Encode-Decode I32
func TestEncodeI32Big(t *testing.T) {
	testReg := Register{"test", 0, i32, 3, ReadOnly, bigEndian, 0}
	var testVal float64 = -1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to I32 to big-endian []bytes: %v", testVal, bytes)

	assertBytes := [4]byte{255, 255, 251, 46}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

func TestDecodeI32Big(t *testing.T) {
	testReg := Register{"test", 0, i32, 3, ReadOnly, bigEndian, 0}
	assertVal := rand.Float64() * -2147483647
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: [%v] I32 big-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, testVal == math.Ceil(assertVal))
}

// Encode-Decode I16
func TestEncodeI16Big(t *testing.T) {
	testReg := Register{"test", 0, i16, 3, ReadOnly, bigEndian, 0}
	var testVal float64 = -1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to I16 to big-endian []bytes: %v", testVal, bytes)

	assertBytes := [2]byte{251, 46}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

func TestDecodeI16Little(t *testing.T) {
	testReg := Register{"test", 0, i16, 3, ReadOnly, littleEndian, 0}
	assertVal := rand.Float64() * -32767
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: [%v] I16 little-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, testVal == math.Ceil(assertVal))
}

// encode-decode Float32
func TestEncodeF32Big(t *testing.T) {
	testReg := Register{"test", 0, f32, 3, ReadOnly, bigEndian, 0}
	var testVal float64 = -1234
	bytes := encode(testVal, testReg)
	t.Logf("float64: [%v] to F32 to big-endian []bytes: %v", testVal, bytes)

	assertBytes := [4]byte{196, 154, 64, 0}
	assert.Assert(t, bytes != nil)
	assert.Assert(t, len(bytes) == len(assertBytes[:]))
	for i := range bytes {
		assert.Assert(t, bytes[i] == assertBytes[i])
	}
}

func TestDecodeF32Big(t *testing.T) {
	testReg := Register{"test", 0, f32, 3, ReadOnly, bigEndian, 0}
	assertVal := rand.Float64() * -32767
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: %v F32 big-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, math.Floor(testVal) == math.Floor(assertVal))
}

// encode-decode Float64
func TestDecodeF64Big(t *testing.T) {
	testReg := Register{"test", 0, f64, 3, ReadOnly, bigEndian, 0}
	assertVal := rand.Float64() * -32767
	testBytes := encode(assertVal, testReg)
	testVal := decode(testBytes[:], testReg)
	t.Logf("[]bytes: [%v] F64 big-endian to float64: [%v]", testBytes, testVal)

	assert.Assert(t, testVal == assertVal)
}

func TestRegisterScale(t *testing.T) {
	unscaled := Register{"test", 0, u16, 3, ReadOnly, bigEndian, 0}
	assert.Equal(t, unscaled.scale(), 1.0)

	scaled := Register{"test", 0, u16, 3, ReadOnly, bigEndian, 0.001}
	assert.Equal(t, scaled.scale(), 0.001)
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, sizeOf(u16), uint16(1))
	assert.Equal(t, sizeOf(i16), uint16(1))
	assert.Equal(t, sizeOf(u32), uint16(2))
	assert.Equal(t, sizeOf(f32), uint16(2))
	assert.Equal(t, sizeOf(u64), uint16(4))
	assert.Equal(t, sizeOf(f64), uint16(4))
}

func TestFilterRegisters(t *testing.T) {
	testReg1 := Register{"test1", 0, u16, 3, ReadOnly, bigEndian, 0}
	testReg2 := Register{"test2", 1, u16, 3, WriteOnly, bigEndian, 0}
	testReg3 := Register{"test3", 2, u16, 3, ReadWrite, bigEndian, 0}
	testRegs := []Register{testReg1, testReg2, testReg3}

	readable := FilterRegisters(testRegs, ReadOnly)
	assert.Assert(t, len(readable) == 2)
	assert.Equal(t, readable[0].Name, "test1")
	assert.Equal(t, readable[1].Name, "test3")

	writable := FilterRegisters(testRegs, WriteOnly)
	assert.Assert(t, len(writable) == 2)
	assert.Equal(t, writable[0].Name, "test2")
	assert.Equal(t, writable[1].Name, "test3")
}

func TestNames(t *testing.T) {
	testReg1 := Register{"test1", 0, u16, 3, ReadOnly, bigEndian, 0}
	testReg2 := Register{"test2", 1, u32, 3, ReadOnly, bigEndian, 0}
	testRegs := []Register{testReg1, testReg2}

	names := Names(testRegs)
	assert.Assert(t, len(names) == 2)
	assert.Equal(t, names[0], "test1")
	assert.Equal(t, names[1], "test2")
}

func TestFindRegisterByName(t *testing.T) {
	testReg1 := Register{"test1", 0, u16, 3, ReadOnly, bigEndian, 0}
	testReg2 := Register{"test2", 1, u32, 3, ReadOnly, bigEndian, 0}
	testReg3 := Register{"test3", 3, u64, 3, ReadOnly, bigEndian, 0}
	testRegs := []Register{testReg1, testReg2, testReg3}

	i, err := findIndexByName(testRegs, "test2")

	assert.Assert(t, err == nil)
	assert.Assert(t, testRegs[i].Name == "test2")
	assert.Assert(t, testRegs[i].Address == 1)
	assert.Assert(t, testRegs[i].DataType == u32)
	assert.Assert(t, testRegs[i].FunctionCode == 3)
	assert.Assert(t, testRegs[i].AccessType == ReadOnly)
	assert.Assert(t, testRegs[i].Endianness == bigEndian)
}

func TestFindRegisterByNameFail(t *testing.T) {
	testReg1 := Register{"test1", 0, u16, 3, WriteOnly, bigEndian, 0}
	testReg2 := Register{"test2", 1, u32, 3, WriteOnly, bigEndian, 0}
	testRegs := []Register{testReg1, testReg2}

	i, err := findIndexByName(testRegs, "test42")
	assert.Assert(t, err.Error() == "register name not found in register array")
	assert.Assert(t, i == -1)
}

func TestPollRate(t *testing.T) {
	pollerConfig := PollerConfig{"192.168.0.100", "502", 0x01, 100, 500, false}
	poller := NewPoller(pollerConfig)
	assert.Equal(t, poller.PollRate().Milliseconds(), int64(500))
}

func TestPollerFailOnTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping TestPollerFailOnTimeout in short mode")
	}

	pollerConfig := PollerConfig{"192.0.2.1", "502", 0x01, 100, 500, false}

	reg1 := Register{"test1", 0, u16, 3, ReadOnly, bigEndian, 0}
	regs := []Register{reg1}

	poller := NewPoller(pollerConfig)

	_, err := poller.Read(regs)
	assert.Assert(t, err != nil)
}
