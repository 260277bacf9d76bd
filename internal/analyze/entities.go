package analyze

import (
	"context"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"steergen/internal/steering"
)

// statusSuffixes mark union aliases that read as workflow enumerations.
var statusSuffixes = []string{"Status", "State", "Role", "Type"}

func hasStatusSuffix(name string) bool {
	for _, suffix := range statusSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// entityExtractor parses TypeScript type definitions with tree-sitter.
type entityExtractor struct {
	parser *sitter.Parser
}

func newEntityExtractor() *entityExtractor {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return &entityExtractor{parser: parser}
}

// extract pulls entities and status enums out of one TypeScript source.
func (e *entityExtractor) extract(ctx context.Context, content []byte) ([]steering.Entity, []steering.StatusEnum, error) {
	tree, err := e.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	var entities []steering.Entity
	var enums []steering.StatusEnum
	walkDeclarations(tree.RootNode(), content, &entities, &enums)
	return entities, enums, nil
}

func walkDeclarations(node *sitter.Node, content []byte, entities *[]steering.Entity, enums *[]steering.StatusEnum) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "interface_declaration":
			if entity, ok := parseInterface(child, content); ok {
				*entities = append(*entities, entity)
			}
		case "type_alias_declaration":
			if enum, ok := parseUnionAlias(child, content); ok {
				*enums = append(*enums, enum)
			}
		case "enum_declaration":
			if enum, ok := parseEnum(child, content); ok {
				*enums = append(*enums, enum)
			}
		default:
			walkDeclarations(child, content, entities, enums)
		}
	}
}

// parseInterface turns an interface declaration into an entity with one
// field per property signature.
func parseInterface(node *sitter.Node, content []byte) (steering.Entity, bool) {
	nameNode := node.ChildByFieldName("name")
	bodyNode := node.ChildByFieldName("body")
	if nameNode == nil || bodyNode == nil {
		return steering.Entity{}, false
	}

	entity := steering.Entity{Name: nodeText(nameNode, content)}
	for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
		prop := bodyNode.NamedChild(i)
		if prop.Type() != "property_signature" {
			continue
		}
		propName := prop.ChildByFieldName("name")
		if propName == nil {
			continue
		}

		field := steering.Field{Name: nodeText(propName, content)}
		markerEnd := prop.EndByte()
		if typeNode := prop.ChildByFieldName("type"); typeNode != nil {
			field.Type = strings.TrimSpace(strings.TrimPrefix(nodeText(typeNode, content), ":"))
			markerEnd = typeNode.StartByte()
		}
		// The optional marker sits between the name and the type annotation.
		field.Optional = strings.Contains(string(content[propName.EndByte():markerEnd]), "?")
		entity.Fields = append(entity.Fields, field)
	}
	return entity, true
}

// parseUnionAlias recognizes string-literal union aliases whose name carries
// a workflow suffix, e.g. type OrderStatus = "pending" | "shipped".
func parseUnionAlias(node *sitter.Node, content []byte) (steering.StatusEnum, bool) {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil || valueNode.Type() != "union_type" {
		return steering.StatusEnum{}, false
	}

	name := nodeText(nameNode, content)
	if !hasStatusSuffix(name) {
		return steering.StatusEnum{}, false
	}

	values, ok := unionStringValues(valueNode, content)
	if !ok || len(values) == 0 {
		return steering.StatusEnum{}, false
	}
	return steering.StatusEnum{Name: name, Values: values}, true
}

// unionStringValues collects the members of a (possibly nested) union in
// declaration order. A non-string member disqualifies the whole union.
func unionStringValues(node *sitter.Node, content []byte) ([]string, bool) {
	var values []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "union_type":
			nested, ok := unionStringValues(child, content)
			if !ok {
				return nil, false
			}
			values = append(values, nested...)
		case "literal_type":
			text := strings.TrimSpace(nodeText(child, content))
			if len(text) < 2 || (text[0] != '\'' && text[0] != '"') {
				return nil, false
			}
			values = append(values, strings.Trim(text, `'"`))
		default:
			return nil, false
		}
	}
	return values, true
}

// parseEnum turns a TypeScript enum into a status enumeration. String
// members contribute their assigned value, plain members their name.
func parseEnum(node *sitter.Node, content []byte) (steering.StatusEnum, bool) {
	nameNode := node.ChildByFieldName("name")
	bodyNode := node.ChildByFieldName("body")
	if nameNode == nil || bodyNode == nil {
		return steering.StatusEnum{}, false
	}

	enum := steering.StatusEnum{Name: nodeText(nameNode, content)}
	for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
		member := bodyNode.NamedChild(i)
		switch member.Type() {
		case "enum_assignment":
			if valueNode := member.ChildByFieldName("value"); valueNode != nil {
				enum.Values = append(enum.Values, strings.Trim(nodeText(valueNode, content), `'"`))
			} else if n := member.ChildByFieldName("name"); n != nil {
				enum.Values = append(enum.Values, nodeText(n, content))
			}
		case "property_identifier":
			enum.Values = append(enum.Values, nodeText(member, content))
		}
	}
	if len(enum.Values) == 0 {
		return steering.StatusEnum{}, false
	}
	return enum, true
}

func nodeText(n *sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}

// ExtractEntities parses the conventional type-definition files into domain
// entities and status enumerations. Laravel projects additionally contribute
// name-only entities from their Eloquent models.
func ExtractEntities(ctx context.Context, root string, fw steering.Framework, budget *int) ([]steering.Entity, []steering.StatusEnum, error) {
	extractor := newEntityExtractor()
	var entities []steering.Entity
	var enums []steering.StatusEnum

	for _, file := range typeFiles(root) {
		if !spendBudget(budget) {
			break
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		fileEntities, fileEnums, err := extractor.extract(ctx, data)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			continue
		}
		entities = append(entities, fileEntities...)
		enums = append(enums, fileEnums...)
	}

	if fw == steering.FrameworkLaravel {
		for _, model := range scanModels(root, fw, budget) {
			entities = append(entities, steering.Entity{Name: model, Description: "Eloquent model"})
		}
	}

	return entities, enums, nil
}
