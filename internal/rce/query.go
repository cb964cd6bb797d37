package rce

import (
	"fmt"

	"github.com/olgasafonova/monumenten-mcp-server/internal/sparql"
)

const (
	// CHOServiceURL is the RCE cultural heritage objects SPARQL service
	CHOServiceURL = "https://api.linkeddata.cultureelerfgoed.nl/datasets/rce/cho/services/cho/sparql"

	// MonumentRegisterURL is the public monument register page prefix
	MonumentRegisterURL = "https://monumentenregister.cultureelerfgoed.nl/monumenten/"

	verblijfsobjectIRIPrefix = "https://bag.basisregistraties.overheid.nl/id/verblijfsobject/"

	// municipalMonumentGround is the Wkpb legal ground for municipal monuments
	municipalMonumentGround = "https://data.kkg.kadaster.nl/wkpb/id/grondslag/GG"
)

// statusQueryTemplate takes the identifier literal. The RCE service is
// federated so the whole lookup is one request to the Kadaster endpoint.
const statusQueryTemplate = `PREFIX ceo:  <https://linkeddata.cultureelerfgoed.nl/def/ceo#>
PREFIX geo:  <http://www.opengis.net/ont/geosparql#>
PREFIX geof: <http://www.opengis.net/def/function/geosparql/>
PREFIX wkpb: <https://data.kkg.kadaster.nl/wkpb/def/>

SELECT DISTINCT ?rijksmonumentnummer ?beschermdGezichtNaam ?gemeentelijkMonument
WHERE {
  BIND(%[1]s AS ?identificatie)
  BIND(IRI(CONCAT(%[2]s, ?identificatie)) AS ?vbo)

  OPTIONAL {
    SERVICE <%[3]s> {
      ?monument ceo:heeftBasisregistratieRelatie/ceo:heeftBAGRelatie/ceo:verblijfsobjectIdentificatie ?identificatie ;
                ceo:rijksmonumentnummer ?rijksmonumentnummer .
    }
  }

  OPTIONAL {
    ?vbo geo:hasGeometry/geo:asWKT ?wkt .
    SERVICE <%[3]s> {
      ?gezicht a ceo:Gezicht ;
               ceo:heeftNaam/ceo:naam ?beschermdGezichtNaam ;
               ceo:heeftGeometrie/geo:asWKT ?gezichtWkt .
    }
    FILTER(geof:sfWithin(?wkt, ?gezichtWkt))
  }

  BIND(EXISTS {
    ?beperking wkpb:grondslag <%[4]s> ;
               wkpb:betreftVerblijfsobject ?vbo .
  } AS ?gemeentelijkMonument)
}`

// BuildStatusQuery renders the monument status query for a validated ID.
func BuildStatusQuery(id string) string {
	return fmt.Sprintf(statusQueryTemplate,
		sparql.Literal(id),
		sparql.Literal(verblijfsobjectIRIPrefix),
		CHOServiceURL,
		municipalMonumentGround,
	)
}
