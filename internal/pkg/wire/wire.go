// Package wire compiles the proto2 schemas of the world and order source
// protocols from descriptors built in Go, and encodes messages through dynamicpb.
// Required fields, unknown fields and packed repeats follow the protobuf runtime.
package wire

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ErrMalformed is returned for payloads that are not a valid message of the
// expected type, including ones missing a required field.
var ErrMalformed = errors.New("malformed message")

// Scalar field types used by the protocols.
const (
	Int32  = descriptorpb.FieldDescriptorProto_TYPE_INT32
	Int64  = descriptorpb.FieldDescriptorProto_TYPE_INT64
	Uint32 = descriptorpb.FieldDescriptorProto_TYPE_UINT32
	Bool   = descriptorpb.FieldDescriptorProto_TYPE_BOOL
	String = descriptorpb.FieldDescriptorProto_TYPE_STRING
)

func Required(num int32, name string, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return field(num, name, descriptorpb.FieldDescriptorProto_LABEL_REQUIRED, typ, "")
}

func Optional(num int32, name string, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return field(num, name, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, typ, "")
}

func Repeated(num int32, name string, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return field(num, name, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, typ, "")
}

// OptionalMessage declares a nested message field. message is the short name
// of a message in the same schema.
func OptionalMessage(num int32, name, message string) *descriptorpb.FieldDescriptorProto {
	return field(num, name, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
		descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, message)
}

func RepeatedMessage(num int32, name, message string) *descriptorpb.FieldDescriptorProto {
	return field(num, name, descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
		descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, message)
}

// MessageType declares a message with the given fields.
func MessageType(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

func field(
	num int32,
	name string,
	label descriptorpb.FieldDescriptorProto_Label,
	typ descriptorpb.FieldDescriptorProto_Type,
	message string,
) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  label.Enum(),
		Type:   typ.Enum(),
	}
	if message != "" {
		fd.TypeName = proto.String(message)
	}
	return fd
}

// Schema is one compiled proto2 file.
type Schema struct {
	file protoreflect.FileDescriptor
}

// NewSchema compiles messages into a proto2 file of package pkg. Message
// fields may name their type by its short name.
func NewSchema(name, pkg string, messages ...*descriptorpb.DescriptorProto) (*Schema, error) {
	for _, msg := range messages {
		for _, f := range msg.GetField() {
			if f.TypeName != nil && !strings.HasPrefix(f.GetTypeName(), ".") {
				f.TypeName = proto.String("." + pkg + "." + f.GetTypeName())
			}
		}
	}

	file, err := protodesc.NewFile(&descriptorpb.FileDescriptorProto{
		Name:        proto.String(name),
		Package:     proto.String(pkg),
		Syntax:      proto.String("proto2"),
		MessageType: messages,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &Schema{file: file}, nil
}

// MustSchema is like NewSchema but panics if the schema does not compile.
func MustSchema(name, pkg string, messages ...*descriptorpb.DescriptorProto) *Schema {
	s, err := NewSchema(name, pkg, messages...)
	if err != nil {
		panic(err)
	}
	return s
}

// New returns an empty message of the named type. It panics on a name the
// schema does not declare.
func (s *Schema) New(name string) *Message {
	md := s.file.Messages().ByName(protoreflect.Name(name))
	if md == nil {
		panic(fmt.Sprintf("wire: schema %s has no message %s", s.file.Path(), name))
	}
	return &Message{msg: dynamicpb.NewMessage(md)}
}

// Unmarshal decodes b as the named message.
func (s *Schema) Unmarshal(name string, b []byte) (*Message, error) {
	m := s.New(name)
	if err := proto.Unmarshal(b, m.msg.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	return m, nil
}

// Message is a dynamic message addressed by field name. Setters return the
// message so nested values can be built inline.
type Message struct {
	msg protoreflect.Message
}

// Marshal encodes the message. A missing required field is an error.
func (m *Message) Marshal() ([]byte, error) {
	b, err := proto.Marshal(m.msg.Interface())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.msg.Descriptor().Name(), err)
	}
	return b, nil
}

func (m *Message) SetInt32(name string, v int32) *Message {
	m.msg.Set(m.field(name), protoreflect.ValueOfInt32(v))
	return m
}

func (m *Message) SetInt64(name string, v int64) *Message {
	m.msg.Set(m.field(name), protoreflect.ValueOfInt64(v))
	return m
}

func (m *Message) SetUint32(name string, v uint32) *Message {
	m.msg.Set(m.field(name), protoreflect.ValueOfUint32(v))
	return m
}

func (m *Message) SetBool(name string, v bool) *Message {
	m.msg.Set(m.field(name), protoreflect.ValueOfBool(v))
	return m
}

func (m *Message) SetString(name string, v string) *Message {
	m.msg.Set(m.field(name), protoreflect.ValueOfString(v))
	return m
}

func (m *Message) SetMessage(name string, v *Message) *Message {
	m.msg.Set(m.field(name), protoreflect.ValueOfMessage(v.msg))
	return m
}

// AddInt64 appends v to a repeated int64 field.
func (m *Message) AddInt64(name string, v int64) *Message {
	m.msg.Mutable(m.field(name)).List().Append(protoreflect.ValueOfInt64(v))
	return m
}

// AddMessage appends v to a repeated message field.
func (m *Message) AddMessage(name string, v *Message) *Message {
	m.msg.Mutable(m.field(name)).List().Append(protoreflect.ValueOfMessage(v.msg))
	return m
}

// Has reports whether a singular field is set, or a repeated one is non-empty.
func (m *Message) Has(name string) bool {
	return m.msg.Has(m.field(name))
}

func (m *Message) Int32(name string) int32 {
	return int32(m.msg.Get(m.field(name)).Int())
}

func (m *Message) Int64(name string) int64 {
	return m.msg.Get(m.field(name)).Int()
}

func (m *Message) Uint32(name string) uint32 {
	return uint32(m.msg.Get(m.field(name)).Uint())
}

func (m *Message) Bool(name string) bool {
	return m.msg.Get(m.field(name)).Bool()
}

// Text returns a string field.
func (m *Message) Text(name string) string {
	return m.msg.Get(m.field(name)).String()
}

// Message returns a nested message, or nil when the field is absent.
func (m *Message) Message(name string) *Message {
	fd := m.field(name)
	if !m.msg.Has(fd) {
		return nil
	}
	return &Message{msg: m.msg.Get(fd).Message()}
}

// Int64s returns the values of a repeated int64 field.
func (m *Message) Int64s(name string) []int64 {
	list := m.msg.Get(m.field(name)).List()
	out := make([]int64, 0, list.Len())
	for i := range list.Len() {
		out = append(out, list.Get(i).Int())
	}
	return out
}

// Messages returns the elements of a repeated message field.
func (m *Message) Messages(name string) []*Message {
	list := m.msg.Get(m.field(name)).List()
	out := make([]*Message, 0, list.Len())
	for i := range list.Len() {
		out = append(out, &Message{msg: list.Get(i).Message()})
	}
	return out
}

func (m *Message) field(name string) protoreflect.FieldDescriptor {
	fd := m.msg.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		panic(fmt.Sprintf("wire: %s has no field %s", m.msg.Descriptor().FullName(), name))
	}
	return fd
}
