package cli

import (
	"bitsteg/internal/logging"
	"bitsteg/pkg/bitmap"
	"bitsteg/pkg/config"
	stegImage "bitsteg/pkg/image"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
)

var (
	errNoPayload       = errors.New("either --message or --file must be supplied")
	errBothStdin       = errors.New("the image and the payload cannot both be read from stdin")
	errInPlaceNeedFile = errors.New("--in-place needs --image to be a file")
)

func BMPCommands() *cobra.Command {
	bmpCmd := &cobra.Command{
		Use:     "bmp",
		Short:   "Hides and shows data in the least significant bits of bitmap images",
		Example: "bitsteg bmp hide --image source.bmp --output hidden.bmp --message 'Hello, World!'",
	}

	bmpCmd.AddCommand(hideCommand(), showCommand(), infoCommand(), convertCommand())
	return bmpCmd
}

type hideOpts struct {
	image       string
	output      string
	message     string
	payloadFile string
	inPlace     bool
	chunkSize   int
}

func hideCommand() *cobra.Command {
	opts := hideOpts{}

	hideCmd := &cobra.Command{
		Use:     "hide",
		Example: "bitsteg bmp hide --image source.bmp --output hidden.bmp --file secret.txt",
		Short:   "Hide a message or a file in a bitmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return HideInBMP(cmd, opts)
		},
	}

	hideCmd.Flags().StringVar(&opts.image, "image", stdio, "Bitmap to hide data in, - reads it from stdin")
	hideCmd.Flags().StringVar(&opts.output, "output", stdio, "Where to write the bitmap with the hidden data, - writes it to stdout")
	hideCmd.Flags().StringVar(&opts.message, "message", "", "Text to hide")
	hideCmd.Flags().StringVar(&opts.payloadFile, "file", "", "File whose content is hidden, - reads it from stdin")
	hideCmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "Modify --image directly instead of writing a new bitmap")
	hideCmd.Flags().IntVar(&opts.chunkSize, "chunk-size", config.DefaultChunkSize, "Payload bytes read at once")
	hideCmd.MarkFlagsMutuallyExclusive("message", "file")
	hideCmd.MarkFlagsMutuallyExclusive("output", "in-place")

	return hideCmd
}

func HideInBMP(cmd *cobra.Command, opts hideOpts) error {
	logger := logging.BuildLogger()

	var payload []byte
	switch {
	case opts.message != "":
		payload = []byte(opts.message)
	case opts.payloadFile == stdio && opts.image == stdio:
		return errBothStdin
	case opts.payloadFile != "":
		var err error
		if payload, err = readInput(cmd, opts.payloadFile); err != nil {
			return err
		}
	default:
		return errNoPayload
	}

	if opts.inPlace {
		return hideInPlace(cmd, opts, payload)
	}

	s := NewSpinner(cmd)
	s.Prefix = "Reading source bitmap "
	s.Start()
	defer s.Stop()

	imageBytes, err := readInput(cmd, opts.image)
	if err != nil {
		return err
	}
	bm, err := bitmap.FromBytes(imageBytes)
	if err != nil {
		return err
	}

	s.Prefix = "Hiding payload "
	encoder := stegImage.NewImageEncoder(bm, config.EncodeConfig{ChunkSize: opts.chunkSize})
	if err = encoder.Encode(payload); err != nil {
		return err
	}

	s.Prefix = "Writing output bitmap "
	output, err := createOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	if err = encoder.WriteEncodedBMP(output); err != nil {
		output.Close()
		return err
	}
	if err = output.Close(); err != nil {
		return err
	}

	s.FinalMSG = fmt.Sprintf("Hid %s in %s\n", humanize.IBytes(uint64(len(payload))), opts.output)
	logger.With("stats", encoder.Stats()).Debug("Bitmap hide was successful")
	return nil
}

// hideInPlace writes the payload straight into the file, only the pixels carrying it are touched
func hideInPlace(cmd *cobra.Command, opts hideOpts, payload []byte) error {
	if opts.image == stdio {
		return errInPlaceNeedFile
	}

	f, err := fs.OpenFile(opts.image, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	bm, err := bitmap.Open(f)
	if err != nil {
		return err
	}
	encoder := stegImage.NewImageEncoder(bm, config.EncodeConfig{ChunkSize: opts.chunkSize})
	if err = encoder.Encode(payload); err != nil {
		return err
	}

	logging.BuildLogger().With("stats", encoder.Stats()).Debug("Bitmap hide was successful")
	return f.Close()
}

type showOpts struct {
	image          string
	output         string
	raw            bool
	maxPayloadSize uint32
}

func showCommand() *cobra.Command {
	opts := showOpts{}

	showCmd := &cobra.Command{
		Use:     "show",
		Example: "bitsteg bmp show --image hidden.bmp",
		Short:   "Show the data hidden in a bitmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ShowFromBMP(cmd, opts)
		},
	}

	showCmd.Flags().StringVar(&opts.image, "image", stdio, "Bitmap with hidden data, - reads it from stdin")
	showCmd.Flags().StringVar(&opts.output, "output", stdio, "Where to write the hidden data, - writes it to stdout")
	showCmd.Flags().BoolVar(&opts.raw, "raw", false, "Write the hidden bytes as they are instead of checking they are text")
	showCmd.Flags().Uint32Var(&opts.maxPayloadSize, "max-payload-size", config.DefaultMaxPayloadSize, "Largest hidden payload to allocate memory for")

	return showCmd
}

func ShowFromBMP(cmd *cobra.Command, opts showOpts) error {
	imageBytes, err := readInput(cmd, opts.image)
	if err != nil {
		return err
	}
	bm, err := bitmap.FromBytes(imageBytes)
	if err != nil {
		return err
	}

	decoder := stegImage.NewImageDecoder(bm, config.DecodeConfig{MaxPayloadSize: opts.maxPayloadSize})
	var out []byte
	if opts.raw {
		out, err = decoder.Decode()
	} else {
		var text string
		text, err = decoder.DecodeText()
		out = []byte(text + "\n")
	}
	if err != nil {
		return err
	}

	output, err := createOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	if _, err = output.Write(out); err != nil {
		output.Close()
		return err
	}

	logging.BuildLogger().With("stats", decoder.Stats()).Debug("Bitmap show was successful")
	return output.Close()
}

func infoCommand() *cobra.Command {
	var imagePath string

	infoCmd := &cobra.Command{
		Use:     "info",
		Example: "bitsteg bmp info --image source.bmp",
		Short:   "Show the pixel format of a bitmap and how much it can hide",
		RunE: func(cmd *cobra.Command, args []string) error {
			imageBytes, err := readInput(cmd, imagePath)
			if err != nil {
				return err
			}
			bm, err := bitmap.FromBytes(imageBytes)
			if err != nil {
				return err
			}
			return printInfo(cmd, bm)
		},
	}

	infoCmd.Flags().StringVar(&imagePath, "image", stdio, "Bitmap to describe, - reads it from stdin")
	return infoCmd
}

func printInfo(cmd *cobra.Command, bm *bitmap.Bitmap) error {
	info := stegImage.Info(bm)

	var out bytes.Buffer
	fmt.Fprintf(&out, "Dimensions:     %dx%d\n", info.Width, info.Height)
	fmt.Fprintf(&out, "Depth:          %d bits\n", info.Depth)
	fmt.Fprintf(&out, "Masks:          red %#x, green %#x, blue %#x, alpha %#x\n",
		info.Masks[0], info.Masks[1], info.Masks[2], info.Masks[3])
	fmt.Fprintf(&out, "Bits per pixel: %d\n", info.BitsPerPixel)
	fmt.Fprintf(&out, "Capacity:       %s (%d bytes)\n", humanize.IBytes(info.Capacity), info.Capacity)

	_, err := cmd.OutOrStdout().Write(out.Bytes())
	return err
}

func convertCommand() *cobra.Command {
	var inputPath, outputPath string

	convertCmd := &cobra.Command{
		Use:     "convert",
		Example: "bitsteg bmp convert --image photo.png --output carrier.bmp",
		Short:   "Convert a PNG, JPEG or bitmap image into a 24 bit bitmap that can hide data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ConvertToBMP(cmd, inputPath, outputPath)
		},
	}

	convertCmd.Flags().StringVar(&inputPath, "image", stdio, "Image to convert, - reads it from stdin")
	convertCmd.Flags().StringVar(&outputPath, "output", stdio, "Where to write the bitmap, - writes it to stdout")
	MarkFlagsRequired(convertCmd, "image", "output")
	return convertCmd
}

func ConvertToBMP(cmd *cobra.Command, inputPath, outputPath string) error {
	input, err := readInput(cmd, inputPath)
	if err != nil {
		return err
	}
	srcImage, format, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return err
	}

	// Transparency is flattened onto white, an opaque RGBA image is written as 24 bits per pixel
	img := image.NewRGBA(srcImage.Bounds())
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds(), srcImage, srcImage.Bounds().Min, draw.Over)

	output, err := createOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	if err = bmp.Encode(output, img); err != nil {
		output.Close()
		return err
	}

	logging.BuildLogger().Debug("Converted image to bitmap", "source_format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return output.Close()
}
