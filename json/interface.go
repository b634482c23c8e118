package json

type EncoderInterface interface {
	Encode(any) error
}

type DecoderInterface interface {
	Decode(any) error
}

var (
	_ EncoderInterface = (*Encoder)(nil)
	_ DecoderInterface = (*Decoder)(nil)
)
